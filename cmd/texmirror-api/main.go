package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"texmirror/internal/adapters/gitmirror"
	"texmirror/internal/adapters/httpapi"
	"texmirror/internal/adapters/sqlite"
	"texmirror/internal/application/commands"
	"texmirror/internal/config"
)

func main() {
	configFlag := flag.String("config", config.ConfigFile(), "path to the project config file")
	addrFlag := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	logger := log.New(os.Stderr, "[texmirror-api] ", log.LstdFlags)

	registry, err := config.Load(*configFlag)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	cacheDir := config.CacheDir()
	mirrors := gitmirror.New(gitmirror.Options{
		Root:        cacheDir,
		GitHost:     registry.GitHost(),
		AuthorName:  config.AuthorName(),
		AuthorEmail: config.AuthorEmail(),
		Logger:      logger,
	})

	index := sqlite.NewIndex()
	if err := index.Open(cacheDir); err != nil {
		logger.Fatalf("open section index: %v", err)
	}
	defer index.Close()

	deps := commands.Deps{
		Registry: registry,
		Mirrors:  mirrors,
		Locks:    mirrors,
		Index:    index,
	}

	apiKey := config.APIKey()
	server := httpapi.NewServer(&httpapi.Config{
		Addr:    *addrFlag,
		APIKey:  apiKey,
		DocsURL: registry.DocsURL(),
		Logger:  logger,
	}, deps)

	if err := server.Start(); err != nil {
		logger.Fatalf("start server: %v", err)
	}

	fmt.Printf("texmirror API listening on http://%s\n", server.Addr())
	fmt.Printf("Health check: http://%s/health\n", server.Addr())
	if apiKey == "" {
		fmt.Println("Warning: " + config.EnvAPIKey + " is not set; mutating routes accept unauthenticated requests")
	}
	fmt.Println("\nPress Ctrl+C to stop...")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()

	fmt.Println("\nShutting down...")
	if err := server.Stop(); err != nil {
		logger.Fatalf("shutdown: %v", err)
	}
}
