package draft

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/enovcorp/academy-core/internal/modules/training"
)

// ExportFilename names a catalog export for a given day.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("enov-academy-%s.json", now.Format("2006-01-02"))
}

// ExportJSON renders the working set as the same JSON shape Import accepts.
func (s *Store) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s.Trainings(), "", "  ")
}

// Snippet renders the working set as a Go composite literal, ready to paste
// where a hardcoded seed catalog is wanted.
func Snippet(items []training.Training) string {
	var b strings.Builder
	b.WriteString("[]training.Training{\n")
	for _, t := range items {
		writeTrainingLiteral(&b, t)
	}
	b.WriteString("}\n")
	return b.String()
}

func writeTrainingLiteral(b *strings.Builder, t training.Training) {
	b.WriteString("\t{\n")
	writeStringField(b, 2, "Slug", t.Slug)
	writeStringField(b, 2, "Title", t.Title)
	writeStringField(b, 2, "Category", t.Category)
	fmt.Fprintf(b, "\t\tStatus: %s,\n", strconv.Quote(string(t.Status)))
	writeStringField(b, 2, "Summary", t.Summary)
	writeStringField(b, 2, "Description", t.Description)
	writeListField(b, "Outcomes", t.Outcomes)
	writeListField(b, "Prerequisites", t.Prerequisites)
	b.WriteString("\t\tDetails: models.TrainingDetails{\n")
	writeStringField(b, 3, "Duration", t.Details.Duration)
	writeStringField(b, 3, "Level", t.Details.Level)
	writeStringField(b, 3, "Format", t.Details.Format)
	writeStringField(b, 3, "NextSession", t.Details.NextSession)
	writeStringField(b, 3, "Price", t.Details.Price)
	writeStringField(b, 3, "Location", t.Details.Location)
	b.WriteString("\t\t},\n")
	writeStringField(b, 2, "CoverImage", t.CoverImage)
	writeStringField(b, 2, "YoutubeEmbed", t.YoutubeEmbed)
	writeStringField(b, 2, "PdfProgram", t.PdfProgram)
	writeStringField(b, 2, "RegistrationURL", t.RegistrationURL)
	b.WriteString("\t},\n")
}

func writeStringField(b *strings.Builder, depth int, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s%s: %s,\n", strings.Repeat("\t", depth), name, strconv.Quote(value))
}

func writeListField(b *strings.Builder, name string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "\t\t%s: []string{\n", name)
	for _, v := range values {
		fmt.Fprintf(b, "\t\t\t%s,\n", strconv.Quote(v))
	}
	b.WriteString("\t\t},\n")
}
