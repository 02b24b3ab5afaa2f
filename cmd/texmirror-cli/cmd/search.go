package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"texmirror/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search sections across projects",
	Long: `Search section titles and content across every configured project,
or one project with -p. Mirrors are refreshed and reindexed before the
query runs.

Examples:
  texmirror-cli search methodology
  texmirror-cli search -p thesis "related work" --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewSearchSectionsCommand(GetDeps(), args[0], projectName, searchLimit).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (default 20, max 100)")
	rootCmd.AddCommand(searchCmd)
}
