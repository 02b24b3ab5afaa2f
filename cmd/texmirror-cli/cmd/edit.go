package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"texmirror/internal/application/commands"
)

var (
	contentFlag   string
	commitMessage string
	noPush        bool
)

// contentOrStdin returns the --content flag value, or reads all of stdin
// when the flag is unset. Piping a file in is the usual way to supply
// multi-line LaTeX.
func contentOrStdin() (string, error) {
	if contentFlag != "" {
		return contentFlag, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

var createCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Create a new file in a project",
	Long: `Create a file that does not exist yet, commit it, and push.

Content comes from --content or stdin. Fails if the file already exists;
use edit to replace an existing file.

Examples:
  texmirror-cli create notes.tex --content '\section{Notes}'
  cat chapter.tex | texmirror-cli create chapters/three.tex`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentOrStdin()
		if err != nil {
			return err
		}

		ctx := context.Background()
		result, err := commands.NewCreateFileCommand(GetDeps(), projectName, args[0], content, commitMessage, !noPush).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Replace the content of an existing file",
	Long: `Overwrite an existing file with new content, commit, and push.

Content comes from --content or stdin. Fails if the file does not exist;
use create for new files.

Examples:
  texmirror-cli edit main.tex --content '...'
  cat main.tex | texmirror-cli edit main.tex`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentOrStdin()
		if err != nil {
			return err
		}

		ctx := context.Background()
		result, err := commands.NewEditFileCommand(GetDeps(), projectName, args[0], content, commitMessage, !noPush).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a file from a project",
	Long: `Delete a file, commit the removal, and push.

Examples:
  texmirror-cli delete old-notes.tex
  texmirror-cli delete -p thesis drafts/scratch.tex --no-push`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewDeleteFileCommand(GetDeps(), projectName, args[0], commitMessage, !noPush).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{createCmd, editCmd, deleteCmd} {
		c.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message (default: per-operation message)")
		c.Flags().BoolVar(&noPush, "no-push", false, "commit locally without pushing")
	}
	createCmd.Flags().StringVar(&contentFlag, "content", "", "file content (default: read from stdin)")
	editCmd.Flags().StringVar(&contentFlag, "content", "", "file content (default: read from stdin)")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
}
