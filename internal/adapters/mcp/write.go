package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"texmirror/internal/application/commands"
	"texmirror/internal/domain"
)

// RegisterWriteTools adds all mutating project tools to the MCP server.
// docsURL is the remote editor's import endpoint used by create_project.
func RegisterWriteTools(s *server.MCPServer, deps commands.Deps, docsURL string) {
	s.AddTool(createProjectTool(), createProjectHandler(docsURL))
	s.AddTool(createFileTool(), createFileHandler(deps))
	s.AddTool(editFileTool(), editFileHandler(deps))
	s.AddTool(updateSectionTool(), updateSectionHandler(deps))
	s.AddTool(syncProjectTool(), syncProjectHandler(deps))
	s.AddTool(deleteFileTool(), deleteFileHandler(deps))
}

// withCommitMessage and withPush are the git options shared by every
// mutating file tool.
func withCommitMessage() mcp.ToolOption {
	return mcp.WithString("commit_message",
		mcp.Description("Git commit message"),
	)
}

func withPush() mcp.ToolOption {
	return mcp.WithBoolean("push",
		mcp.Description("Push changes to Overleaf (default: true)"),
	)
}

// --- create_project ---

func createProjectTool() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a new Overleaf project from LaTeX content. The project will open in Overleaf's web interface. Returns a URL to the new project."),
		mcp.WithString("content",
			mcp.Description("LaTeX content for the project (raw .tex content or base64-encoded zip)"),
			mcp.Required(),
		),
		mcp.WithString("project_name",
			mcp.Description("Optional name for the project"),
		),
		mcp.WithString("engine",
			mcp.Description("TeX engine to use (default: pdflatex)"),
			mcp.Enum(domain.EnginePDFLaTeX, domain.EngineXeLaTeX, domain.EngineLuaLaTeX, domain.EngineLaTeXDVIPDF),
		),
		mcp.WithBoolean("is_zip",
			mcp.Description("If true, content is base64-encoded zip file"),
		),
	)
}

func createProjectHandler(docsURL string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snippet := domain.ProjectSnippet{
			Content: req.GetString("content", ""),
			Name:    req.GetString("project_name", ""),
			Engine:  req.GetString("engine", ""),
			IsZip:   req.GetBool("is_zip", false),
		}
		result, err := commands.NewCreateProjectCommand(docsURL, snippet).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- create_file ---

func createFileTool() mcp.Tool {
	return mcp.NewTool("create_file",
		mcp.WithDescription("Create a new file in an existing Overleaf project. Commits and optionally pushes the changes."),
		mcp.WithString("file_path",
			mcp.Description("Path for the new file (e.g., 'chapters/intro.tex')"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("Content for the new file"),
			mcp.Required(),
		),
		withCommitMessage(),
		withPush(),
		withProjectName(),
	)
}

func createFileHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateFileCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("file_path", ""),
			req.GetString("content", ""),
			req.GetString("commit_message", ""),
			req.GetBool("push", true),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- edit_file ---

func editFileTool() mcp.Tool {
	return mcp.NewTool("edit_file",
		mcp.WithDescription("Edit an existing file in an Overleaf project. Commits and optionally pushes the changes."),
		mcp.WithString("file_path",
			mcp.Description("Path to the file to edit"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("New content for the file"),
			mcp.Required(),
		),
		withCommitMessage(),
		withPush(),
		withProjectName(),
	)
}

func editFileHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewEditFileCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("file_path", ""),
			req.GetString("content", ""),
			req.GetString("commit_message", ""),
			req.GetBool("push", true),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update_section ---

func updateSectionTool() mcp.Tool {
	return mcp.NewTool("update_section",
		mcp.WithDescription("Update a specific section in a LaTeX file by its title. Replaces the section content while preserving surrounding content."),
		mcp.WithString("file_path",
			mcp.Description("Path to the LaTeX file"),
			mcp.Required(),
		),
		mcp.WithString("section_title",
			mcp.Description("Title of the section to update"),
			mcp.Required(),
		),
		mcp.WithString("new_content",
			mcp.Description("New content for the section (excluding the section header)"),
			mcp.Required(),
		),
		withCommitMessage(),
		withPush(),
		withProjectName(),
	)
}

func updateSectionHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUpdateSectionCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("file_path", ""),
			req.GetString("section_title", ""),
			req.GetString("new_content", ""),
			req.GetString("commit_message", ""),
			req.GetBool("push", true),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- sync_project ---

func syncProjectTool() mcp.Tool {
	return mcp.NewTool("sync_project",
		mcp.WithDescription("Sync the local project with Overleaf (pull latest changes)."),
		withProjectName(),
	)
}

func syncProjectHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSyncProjectCommand(deps, req.GetString("project_name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_file ---

func deleteFileTool() mcp.Tool {
	return mcp.NewTool("delete_file",
		mcp.WithDescription("Delete a file from an Overleaf project. Commits and optionally pushes the changes."),
		mcp.WithString("file_path",
			mcp.Description("Path to the file to delete"),
			mcp.Required(),
		),
		withCommitMessage(),
		withPush(),
		withProjectName(),
	)
}

func deleteFileHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDeleteFileCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("file_path", ""),
			req.GetString("commit_message", ""),
			req.GetBool("push", true),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
