package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"texmirror/internal/application/commands"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the latest remote state into a project mirror",
	Long: `Sync a project's mirror with Overleaf: clone it if absent, pull
otherwise. A mirror with uncommitted local changes is left untouched.

Examples:
  texmirror-cli sync
  texmirror-cli sync -p thesis`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewSyncProjectCommand(GetDeps(), projectName).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
