package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"texmirror/internal/application/commands"
)

var (
	historyPath  string
	historyLimit int

	diffFrom string
	diffTo   string
	diffPath string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent commits of a project mirror",
	Long: `Show the commit history of a project's mirror, newest first.

Examples:
  texmirror-cli history
  texmirror-cli history --limit 5
  texmirror-cli history --path main.tex`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewHistoryCommand(GetDeps(), projectName, historyPath, historyLimit).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show changes between commits or against the worktree",
	Long: `Show a unified diff. With only --from, compares that commit to HEAD
and appends uncommitted worktree changes. With --to, compares the two
commits.

Examples:
  texmirror-cli diff
  texmirror-cli diff --from HEAD~3
  texmirror-cli diff --from abc1234 --to def5678 --path main.tex`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewDiffCommand(GetDeps(), projectName, diffFrom, diffTo, diffPath).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyPath, "path", "", "only commits touching this path")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "number of commits to show (default 20, max 100)")

	diffCmd.Flags().StringVar(&diffFrom, "from", "", "starting ref (default HEAD)")
	diffCmd.Flags().StringVar(&diffTo, "to", "", "ending ref (default: HEAD plus worktree changes)")
	diffCmd.Flags().StringVar(&diffPath, "path", "", "only changes touching this path")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(diffCmd)
}
