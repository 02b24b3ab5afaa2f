package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"texmirror/internal/adapters/browser"
	"texmirror/internal/application/commands"
	"texmirror/internal/domain"
)

var (
	newProjectName   string
	newProjectEngine string
	newProjectZip    bool
	newProjectOpen   bool
)

var createProjectCmd = &cobra.Command{
	Use:   "create-project [file]",
	Short: "Open the Overleaf import form for a new project",
	Long: `Format an Overleaf project-creation URL from a .tex file (or stdin)
and print it. Overleaf has no API for creating projects; the URL opens
its import form pre-filled with the content. Use --zip for a zipped
project instead of a single source file.

Examples:
  texmirror-cli create-project main.tex --name "New Paper"
  texmirror-cli create-project project.zip --zip --open
  echo '\documentclass{article}...' | texmirror-cli create-project`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return err
		}

		content := string(data)
		if newProjectZip {
			content = base64.StdEncoding.EncodeToString(data)
		}

		snippet := domain.ProjectSnippet{
			Content: content,
			Name:    newProjectName,
			Engine:  newProjectEngine,
			IsZip:   newProjectZip,
		}

		ctx := context.Background()
		result, err := commands.NewCreateProjectCommand(GetRegistry().DocsURL(), snippet).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)

		if newProjectOpen {
			if err := browser.NewOpener().OpenURL(result.URL); err != nil {
				return fmt.Errorf("open browser: %w", err)
			}
		}
		return nil
	},
}

func init() {
	createProjectCmd.Flags().StringVar(&newProjectName, "name", "", "display name for the new project")
	createProjectCmd.Flags().StringVar(&newProjectEngine, "engine", "", "TeX engine: pdflatex, xelatex, lualatex or latex_dvipdf (default pdflatex)")
	createProjectCmd.Flags().BoolVar(&newProjectZip, "zip", false, "treat the input as a zipped project")
	createProjectCmd.Flags().BoolVar(&newProjectOpen, "open", false, "open the URL in the default browser")

	rootCmd.AddCommand(createProjectCmd)
}
