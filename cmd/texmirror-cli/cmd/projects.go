package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"texmirror/internal/application/commands"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List configured projects",
	Long: `List every project in the configuration, marking the default.

Example:
  texmirror-cli projects`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewListProjectsCommand(GetRegistry()).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
