package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"texmirror/internal/adapters/gitmirror"
	"texmirror/internal/adapters/sqlite"
	"texmirror/internal/adapters/tui"
	"texmirror/internal/application/commands"
	"texmirror/internal/config"
)

func main() {
	configFlag := flag.String("config", config.ConfigFile(), "path to the project config file")
	flag.Parse()

	registry, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal; mirror activity must not write to it.
	cacheDir := config.CacheDir()
	mirrors := gitmirror.New(gitmirror.Options{
		Root:        cacheDir,
		GitHost:     registry.GitHost(),
		AuthorName:  config.AuthorName(),
		AuthorEmail: config.AuthorEmail(),
		Logger:      discardLogger(),
	})

	index := sqlite.NewIndex()
	if err := index.Open(cacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer index.Close()

	deps := commands.Deps{
		Registry: registry,
		Mirrors:  mirrors,
		Locks:    mirrors,
		Index:    index,
	}

	app := tui.NewApp(deps)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
