package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"texmirror/internal/adapters/gitmirror"
	"texmirror/internal/adapters/sqlite"
	"texmirror/internal/application/commands"
	"texmirror/internal/config"
)

var (
	configPath  string
	projectName string

	registry *config.Registry
	index    *sqlite.Index
	deps     commands.Deps
)

var rootCmd = &cobra.Command{
	Use:   "texmirror-cli",
	Short: "CLI for git-backed mirrors of Overleaf projects",
	Long: `texmirror-cli manages local git mirrors of Overleaf projects and edits
them at the file or section level.

Reads refresh the mirror first, so content is as fresh as the remote
allows. Edits commit one file at a time and push to Overleaf unless
--no-push is given.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		registry, err = config.Load(configPath)
		if err != nil {
			return err
		}

		cacheDir := config.CacheDir()
		mirrors := gitmirror.New(gitmirror.Options{
			Root:        cacheDir,
			GitHost:     registry.GitHost(),
			AuthorName:  config.AuthorName(),
			AuthorEmail: config.AuthorEmail(),
		})

		index = sqlite.NewIndex()
		if err := index.Open(cacheDir); err != nil {
			return err
		}

		deps = commands.Deps{
			Registry: registry,
			Mirrors:  mirrors,
			Locks:    mirrors,
			Index:    index,
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if index != nil {
		index.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to the project config file (default "+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVarP(&projectName, "project", "p", "",
		"project key (default: the configured default project)")
}

// GetDeps returns the wired command dependencies
func GetDeps() commands.Deps {
	return deps
}

// GetRegistry returns the loaded project registry
func GetRegistry() *config.Registry {
	return registry
}
