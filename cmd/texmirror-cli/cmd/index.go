package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"texmirror/internal/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the section search index",
	Long: `The section index is derived from the mirrors and rebuilt from them
at will; these commands maintain it explicitly.`,
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Reindex every configured project",
	Long: `Refresh every configured mirror and bring the section index up to
date with it.

Example:
  texmirror-cli index rebuild`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		deps := GetDeps()

		for _, project := range deps.Registry.List() {
			var mirror domain.Mirror
			err := deps.Locks.WithWrite(project.RemoteID, func() error {
				var err error
				mirror, err = deps.Mirrors.Ensure(ctx, project)
				return err
			})
			if err != nil {
				return err
			}

			stats, err := deps.Index.SyncProject(project.RemoteID, mirror.Root)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d files scanned, %d reindexed, %d removed, %d sections\n",
				project.Key, stats.FilesScanned, stats.FilesIndexed, stats.FilesRemoved, stats.SectionsFound)
		}
		return nil
	},
}

var indexDropCmd = &cobra.Command{
	Use:   "drop <project>",
	Short: "Remove one project from the index",
	Long: `Drop a project's sections from the index. Accepts a configured key
or a raw project id, so projects already removed from the config can
still be cleaned up.

Examples:
  texmirror-cli index drop thesis
  texmirror-cli index drop 507f1f77bcf86cd799439011`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if project, err := GetRegistry().Lookup(id); err == nil {
			id = project.RemoteID
		}

		if err := GetDeps().Index.DropProject(id); err != nil {
			return err
		}
		fmt.Printf("Dropped '%s' from the index\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexDropCmd)
}
