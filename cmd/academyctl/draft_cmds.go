package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/enovcorp/academy-core/internal/models"
	"github.com/enovcorp/academy-core/internal/modules/training"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List local drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tSTATUS\tCATEGORY\tTITLE")
		for _, d := range store.Drafts() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Slug, d.Status, d.Category, d.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if issues := store.Issues(); len(issues) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d probleme(s), voir `academyctl check`\n", len(issues))
		}
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a blank draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		d := store.Create()
		if err := store.Save(); err != nil {
			return fmt.Errorf("ecriture des brouillons: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "brouillon cree: %s\n", d.Slug)
		return nil
	},
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <slug>",
	Short: "Duplicate a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		dup, err := store.Duplicate(args[0])
		if err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("ecriture des brouillons: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "copie creee: %s\n", dup.Slug)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <slug>",
	Short: "Remove a draft (the set never goes empty)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		if err := store.Remove(args[0]); err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("ecriture des brouillons: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "brouillon supprime: %s\n", args[0])
		return nil
	},
}

var setFlags = struct {
	slug, title, category, status        string
	summary, description                 string
	coverImage, youtubeEmbed, pdfProgram string
	registrationURL                      string
	outcomes, prerequisites              []string
	duration, level, format, nextSession string
	price, location                      string
}{}

var setCmd = &cobra.Command{
	Use:   "set <slug>",
	Short: "Update fields of a draft",
	Long: `Update fields of a draft. Only flags you pass are changed; list flags
(--outcome, --prerequisite) replace the whole list when present.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		d, ok := store.Find(args[0])
		if !ok {
			return fmt.Errorf("formation %q introuvable", args[0])
		}

		t := d.Training
		flags := cmd.Flags()
		setIf(flags.Changed("slug"), &t.Slug, setFlags.slug)
		setIf(flags.Changed("title"), &t.Title, setFlags.title)
		setIf(flags.Changed("category"), &t.Category, setFlags.category)
		if flags.Changed("status") {
			status := models.TrainingStatus(setFlags.status)
			if !status.IsValid() {
				return fmt.Errorf("statut %q invalide (available, soon, closed)", setFlags.status)
			}
			t.Status = status
		}
		setIf(flags.Changed("summary"), &t.Summary, setFlags.summary)
		setIf(flags.Changed("description"), &t.Description, setFlags.description)
		setIf(flags.Changed("cover-image"), &t.CoverImage, setFlags.coverImage)
		setIf(flags.Changed("youtube-embed"), &t.YoutubeEmbed, setFlags.youtubeEmbed)
		setIf(flags.Changed("pdf-program"), &t.PdfProgram, setFlags.pdfProgram)
		setIf(flags.Changed("registration-url"), &t.RegistrationURL, setFlags.registrationURL)
		if flags.Changed("outcome") {
			t.Outcomes = setFlags.outcomes
		}
		if flags.Changed("prerequisite") {
			t.Prerequisites = setFlags.prerequisites
		}
		setIf(flags.Changed("duration"), &t.Details.Duration, setFlags.duration)
		setIf(flags.Changed("level"), &t.Details.Level, setFlags.level)
		setIf(flags.Changed("format"), &t.Details.Format, setFlags.format)
		setIf(flags.Changed("next-session"), &t.Details.NextSession, setFlags.nextSession)
		setIf(flags.Changed("price"), &t.Details.Price, setFlags.price)
		setIf(flags.Changed("location"), &t.Details.Location, setFlags.location)

		if err := store.Update(d.ID, t); err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("ecriture des brouillons: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "brouillon mis a jour: %s\n", training.Normalize(t).Slug)
		return nil
	},
}

func setIf(changed bool, dst *string, value string) {
	if changed {
		*dst = value
	}
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report draft problems that would block a publish",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		issues := store.Issues()
		if len(issues) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "aucun probleme")
			return nil
		}
		for _, issue := range issues {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", issue)
		}
		return fmt.Errorf("%d probleme(s)", len(issues))
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard local drafts in favor of the built-in catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		if err := store.Reset(); err != nil {
			return fmt.Errorf("suppression du cache local: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "brouillons reinitialises (%d formations)\n", len(store.Drafts()))
		return nil
	},
}

func init() {
	flags := setCmd.Flags()
	flags.StringVar(&setFlags.slug, "slug", "", "New slug")
	flags.StringVar(&setFlags.title, "title", "", "Title")
	flags.StringVar(&setFlags.category, "category", "", "Category")
	flags.StringVar(&setFlags.status, "status", "", "Status: available, soon, closed")
	flags.StringVar(&setFlags.summary, "summary", "", "Short summary")
	flags.StringVar(&setFlags.description, "description", "", "Long description (markdown)")
	flags.StringVar(&setFlags.coverImage, "cover-image", "", "Cover image URL")
	flags.StringVar(&setFlags.youtubeEmbed, "youtube-embed", "", "YouTube embed URL")
	flags.StringVar(&setFlags.pdfProgram, "pdf-program", "", "Program PDF URL")
	flags.StringVar(&setFlags.registrationURL, "registration-url", "", "External registration URL")
	flags.StringArrayVar(&setFlags.outcomes, "outcome", nil, "Outcome (repeatable, replaces the list)")
	flags.StringArrayVar(&setFlags.prerequisites, "prerequisite", nil, "Prerequisite (repeatable, replaces the list)")
	flags.StringVar(&setFlags.duration, "duration", "", "Duration")
	flags.StringVar(&setFlags.level, "level", "", "Level")
	flags.StringVar(&setFlags.format, "format", "", "Format")
	flags.StringVar(&setFlags.nextSession, "next-session", "", "Next session")
	flags.StringVar(&setFlags.price, "price", "", "Price")
	flags.StringVar(&setFlags.location, "location", "", "Location")
}
