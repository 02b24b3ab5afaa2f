package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"texmirror/internal/adapters/gitmirror"
	mcpadapter "texmirror/internal/adapters/mcp"
	"texmirror/internal/adapters/sqlite"
	"texmirror/internal/application/commands"
	"texmirror/internal/config"
)

func main() {
	configFlag := flag.String("config", config.ConfigFile(), "path to the project config file")
	flag.Parse()

	// stdout carries the MCP protocol stream; everything we log goes
	// to stderr via the default logger.
	registry, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("texmirror-mcp: %v", err)
	}

	cacheDir := config.CacheDir()
	mirrors := gitmirror.New(gitmirror.Options{
		Root:        cacheDir,
		GitHost:     registry.GitHost(),
		AuthorName:  config.AuthorName(),
		AuthorEmail: config.AuthorEmail(),
	})

	index := sqlite.NewIndex()
	if err := index.Open(cacheDir); err != nil {
		log.Fatalf("texmirror-mcp: open section index: %v", err)
	}
	defer index.Close()

	deps := commands.Deps{
		Registry: registry,
		Mirrors:  mirrors,
		Locks:    mirrors,
		Index:    index,
	}

	mcpServer := server.NewMCPServer(
		"texmirror-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps, registry.DocsURL())

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("texmirror-mcp: %v", err)
	}
}
