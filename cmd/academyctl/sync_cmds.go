package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/enovcorp/academy-core/internal/draft"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace local drafts with a JSON export",
	Long: `Replace local drafts with a JSON file ("-" reads stdin). Both a bare
array of trainings and an object wrapping them under "trainings" are
accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		if args[0] == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("lecture de %s: %w", args[0], err)
		}
		store := openStore()
		n, err := store.Import(raw)
		if err != nil {
			return fmt.Errorf("import de %s: %w", args[0], err)
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("ecriture des brouillons: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d formation(s) importee(s)\n", n)
		return nil
	},
}

var (
	exportDir     string
	exportSnippet bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local drafts as JSON (or a Go literal with --snippet)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()

		if exportSnippet {
			fmt.Fprint(cmd.OutOrStdout(), draft.Snippet(store.Trainings()))
			return nil
		}

		raw, err := store.ExportJSON()
		if err != nil {
			return err
		}
		path := filepath.Join(exportDir, draft.ExportFilename(time.Now()))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return fmt.Errorf("ecriture de %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export ecrit: %s\n", path)
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Overwrite local drafts with the remote collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		items, err := remote.FetchTrainings(ctx)
		if err != nil {
			return err
		}
		store := openStore()
		store.Replace(items)
		if err := store.Save(); err != nil {
			return fmt.Errorf("ecriture des brouillons: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d formation(s) recuperee(s)\n", len(items))
		return nil
	},
}

var publishForce bool

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Replace the remote collection with the local drafts",
	Long: `Replace the remote collection with the local drafts. The remote prunes
every training absent from the push, media included; drafts with problems
are refused unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		if issues := store.Issues(); len(issues) > 0 && !publishForce {
			for _, issue := range issues {
				fmt.Fprintf(cmd.ErrOrStderr(), "- %s\n", issue)
			}
			return fmt.Errorf("%d probleme(s), corriger ou utiliser --force", len(issues))
		}

		remote, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		items := store.Trainings()
		if err := remote.Publish(ctx, items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d formation(s) publiee(s)\n", len(items))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "Directory for the export file")
	exportCmd.Flags().BoolVar(&exportSnippet, "snippet", false, "Print a Go literal to stdout instead of writing a file")
	publishCmd.Flags().BoolVar(&publishForce, "force", false, "Publish even with draft problems")
}
