package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"texmirror/internal/application/commands"
)

var filesExtension string

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List files in a project mirror",
	Long: `List the files of a project's mirror, refreshing it first.

Examples:
  texmirror-cli files
  texmirror-cli files --ext .tex
  texmirror-cli files -p thesis --ext .bib`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewListFilesCommand(GetDeps(), projectName, filesExtension).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var readCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Print a file from a project mirror",
	Long: `Print the content of a file, refreshing the mirror first.

Examples:
  texmirror-cli read main.tex
  texmirror-cli read -p thesis chapters/intro.tex`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewReadFileCommand(GetDeps(), projectName, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Print(result.Content)
		return nil
	},
}

func init() {
	filesCmd.Flags().StringVar(&filesExtension, "ext", "", "only list files with this extension (e.g. .tex)")
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(readCmd)
}
