package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"texmirror/internal/application/commands"
)

// RegisterReadTools adds all read-only project tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps commands.Deps) {
	s.AddTool(listProjectsTool(), listProjectsHandler(deps))
	s.AddTool(listFilesTool(), listFilesHandler(deps))
	s.AddTool(readFileTool(), readFileHandler(deps))
	s.AddTool(getSectionsTool(), getSectionsHandler(deps))
	s.AddTool(getSectionContentTool(), getSectionContentHandler(deps))
	s.AddTool(listHistoryTool(), listHistoryHandler(deps))
	s.AddTool(getDiffTool(), getDiffHandler(deps))
	s.AddTool(searchSectionsTool(), searchSectionsHandler(deps))
}

// withProjectName is the optional project selector shared by every tool
// that operates on a configured project.
func withProjectName() mcp.ToolOption {
	return mcp.WithString("project_name",
		mcp.Description("Project identifier from config (uses default if not specified)"),
	)
}

// --- list_projects ---

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all configured Overleaf projects."),
	)
}

func listProjectsHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewListProjectsCommand(deps.Registry).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- list_files ---

func listFilesTool() mcp.Tool {
	return mcp.NewTool("list_files",
		mcp.WithDescription("List files in an Overleaf project."),
		mcp.WithString("extension",
			mcp.Description("Filter by file extension (e.g., '.tex', '.bib'). Leave empty for all files."),
		),
		withProjectName(),
	)
}

func listFilesHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListFilesCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("extension", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- read_file ---

func readFileTool() mcp.Tool {
	return mcp.NewTool("read_file",
		mcp.WithDescription("Read the content of a file from an Overleaf project."),
		mcp.WithString("file_path",
			mcp.Description("Path to the file within the project"),
			mcp.Required(),
		),
		withProjectName(),
	)
}

func readFileHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewReadFileCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("file_path", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- get_sections ---

func getSectionsTool() mcp.Tool {
	return mcp.NewTool("get_sections",
		mcp.WithDescription("Parse a LaTeX file and extract its section structure. Returns section types, titles, and content previews."),
		mcp.WithString("file_path",
			mcp.Description("Path to the LaTeX file"),
			mcp.Required(),
		),
		withProjectName(),
	)
}

func getSectionsHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListSectionsCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("file_path", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- get_section_content ---

func getSectionContentTool() mcp.Tool {
	return mcp.NewTool("get_section_content",
		mcp.WithDescription("Get the full content of a specific section by its title."),
		mcp.WithString("file_path",
			mcp.Description("Path to the LaTeX file"),
			mcp.Required(),
		),
		mcp.WithString("section_title",
			mcp.Description("Title of the section to retrieve"),
			mcp.Required(),
		),
		withProjectName(),
	)
}

func getSectionContentHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewReadSectionCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("file_path", ""),
			req.GetString("section_title", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- list_history ---

func listHistoryTool() mcp.Tool {
	return mcp.NewTool("list_history",
		mcp.WithDescription("Show git commit history for the project."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of commits to show (default: 20, max: 100)"),
		),
		mcp.WithString("file_path",
			mcp.Description("Filter history to a specific file"),
		),
		withProjectName(),
	)
}

func listHistoryHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewHistoryCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("file_path", ""),
			req.GetInt("limit", 0),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- get_diff ---

func getDiffTool() mcp.Tool {
	return mcp.NewTool("get_diff",
		mcp.WithDescription("Get git diff for the project or specific files."),
		mcp.WithString("from_ref",
			mcp.Description("Starting reference (commit hash, branch, or 'HEAD~n')"),
		),
		mcp.WithString("to_ref",
			mcp.Description("Ending reference (default: working tree)"),
		),
		mcp.WithString("file_path",
			mcp.Description("Filter diff to a specific file"),
		),
		withProjectName(),
	)
}

func getDiffHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDiffCommand(deps,
			req.GetString("project_name", ""),
			req.GetString("from_ref", ""),
			req.GetString("to_ref", ""),
			req.GetString("file_path", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- search_sections ---

func searchSectionsTool() mcp.Tool {
	return mcp.NewTool("search_sections",
		mcp.WithDescription("Search section titles and content previews across projects. Searches all configured projects unless one is named."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of matches to return (default: 20, max: 100)"),
		),
		withProjectName(),
	)
}

func searchSectionsHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSearchSectionsCommand(deps,
			req.GetString("query", ""),
			req.GetString("project_name", ""),
			req.GetInt("limit", 0),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
