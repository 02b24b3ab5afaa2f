package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"texmirror/internal/application/commands"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <path>",
	Short: "List the section structure of a file",
	Long: `Parse a LaTeX file and list its sections with kind and preview.

Examples:
  texmirror-cli sections main.tex
  texmirror-cli sections -p thesis chapters/intro.tex`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewListSectionsCommand(GetDeps(), projectName, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var sectionCmd = &cobra.Command{
	Use:   "section <path> <title>",
	Short: "Print one section of a file",
	Long: `Print the full content of the first section matching the title,
header included. Title matching is case-insensitive.

Examples:
  texmirror-cli section main.tex Introduction
  texmirror-cli section -p thesis main.tex "Related Work"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewReadSectionCommand(GetDeps(), projectName, args[0], args[1]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Print(result.Content)
		return nil
	},
}

var updateSectionCmd = &cobra.Command{
	Use:   "update-section <path> <title>",
	Short: "Replace the body of one section",
	Long: `Replace the body of the first section matching the title. The
section header and everything outside the section are preserved
byte-for-byte. New content comes from --content or stdin.

Examples:
  texmirror-cli update-section main.tex Introduction --content 'New intro text.'
  cat intro.tex | texmirror-cli update-section main.tex Introduction`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentOrStdin()
		if err != nil {
			return err
		}

		ctx := context.Background()
		result, err := commands.NewUpdateSectionCommand(GetDeps(), projectName, args[0], args[1], content, commitMessage, !noPush).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	updateSectionCmd.Flags().StringVar(&contentFlag, "content", "", "new section body (default: read from stdin)")
	updateSectionCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message (default: per-operation message)")
	updateSectionCmd.Flags().BoolVar(&noPush, "no-push", false, "commit locally without pushing")

	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(sectionCmd)
	rootCmd.AddCommand(updateSectionCmd)
}
