package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var uploadFlags = struct {
	slug    string
	kind    string
	attach  string
	publish bool
}{}

// contentTypeByExt guesses the upload content type from the file name; the
// server still validates it against the declared kind.
var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a media file and attach its URL to a draft",
	Long: `Upload a media file to the remote storage. With --attach the returned
URL is written into the draft matching --slug (cover or pdf); --publish
pushes the whole collection right after, so the site picks the file up.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("lecture de %s: %w", path, err)
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(path))
		contentType, ok := contentTypeByExt[ext]
		if !ok {
			return fmt.Errorf("extension %q non acceptee (jpg, jpeg, png, pdf)", ext)
		}

		kind := uploadFlags.kind
		if kind == "" {
			if contentType == "application/pdf" {
				kind = "pdf"
			} else {
				kind = "image"
			}
		}

		remote, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		result, err := remote.Upload(ctx, filepath.Base(path), file, uploadFlags.slug, kind, contentType)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "televerse: %s\n", result.URL)

		if uploadFlags.attach == "" {
			return nil
		}

		store := openStore()
		d, found := store.Find(uploadFlags.slug)
		if !found {
			return fmt.Errorf("formation %q introuvable", uploadFlags.slug)
		}
		t := d.Training
		switch uploadFlags.attach {
		case "cover":
			t.CoverImage = result.URL
		case "pdf":
			t.PdfProgram = result.URL
		default:
			return fmt.Errorf("--attach doit valoir cover ou pdf")
		}
		if err := store.Update(d.ID, t); err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("ecriture des brouillons: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "brouillon mis a jour: %s\n", d.Slug)

		if !uploadFlags.publish {
			return nil
		}
		if issues := store.Issues(); len(issues) > 0 {
			return fmt.Errorf("publication annulee, %d probleme(s), voir `academyctl check`", len(issues))
		}
		items := store.Trainings()
		if err := remote.Publish(ctx, items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d formation(s) publiee(s)\n", len(items))
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadFlags.slug, "slug", "", "Slug of the training the file belongs to")
	uploadCmd.Flags().StringVar(&uploadFlags.kind, "kind", "", "Upload kind: image or pdf (guessed from the extension)")
	uploadCmd.Flags().StringVar(&uploadFlags.attach, "attach", "", "Attach the URL to the draft: cover or pdf")
	uploadCmd.Flags().BoolVar(&uploadFlags.publish, "publish", false, "Publish the collection after attaching")
	_ = uploadCmd.MarkFlagRequired("slug")
}
