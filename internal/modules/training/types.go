package training

import (
	"github.com/enovcorp/academy-core/internal/models"
)

// Training is the wire shape of a catalog entry, shared by the public API,
// the admin sync endpoints, and the local draft tooling. Optional URLs are
// omitted entirely when blank so consumers can treat "present" as
// "non-empty".
type Training struct {
	Slug            string                 `json:"slug"`
	Title           string                 `json:"title"`
	Category        string                 `json:"category"`
	Status          models.TrainingStatus  `json:"status"`
	Summary         string                 `json:"summary"`
	Description     string                 `json:"description"`
	Outcomes        []string               `json:"outcomes"`
	Prerequisites   []string               `json:"prerequisites"`
	Details         models.TrainingDetails `json:"details"`
	CoverImage      string                 `json:"coverImage,omitempty"`
	YoutubeEmbed    string                 `json:"youtubeEmbed,omitempty"`
	PdfProgram      string                 `json:"pdfProgram,omitempty"`
	RegistrationURL string                 `json:"registrationUrl,omitempty"`
}

// MediaURLs lists the storage-backed URLs a training references.
func (t Training) MediaURLs() []string {
	urls := make([]string, 0, 2)
	if t.CoverImage != "" {
		urls = append(urls, t.CoverImage)
	}
	if t.PdfProgram != "" {
		urls = append(urls, t.PdfProgram)
	}
	return urls
}

// ToModel maps a wire record onto its storage row.
func ToModel(t Training) models.TrainingModel {
	return models.TrainingModel{
		Slug:            t.Slug,
		Title:           t.Title,
		Category:        t.Category,
		Status:          t.Status,
		Summary:         t.Summary,
		Description:     t.Description,
		Outcomes:        t.Outcomes,
		Prerequisites:   t.Prerequisites,
		Details:         t.Details,
		CoverImage:      optional(t.CoverImage),
		YoutubeEmbed:    optional(t.YoutubeEmbed),
		PdfProgram:      optional(t.PdfProgram),
		RegistrationURL: optional(t.RegistrationURL),
	}
}

// FromModel maps a storage row back to the wire shape, re-normalized so
// remote reads and local drafts agree on one convention.
func FromModel(m models.TrainingModel) Training {
	return Normalize(Training{
		Slug:            m.Slug,
		Title:           m.Title,
		Category:        m.Category,
		Status:          m.Status,
		Summary:         m.Summary,
		Description:     m.Description,
		Outcomes:        m.Outcomes,
		Prerequisites:   m.Prerequisites,
		Details:         m.Details,
		CoverImage:      deref(m.CoverImage),
		YoutubeEmbed:    deref(m.YoutubeEmbed),
		PdfProgram:      deref(m.PdfProgram),
		RegistrationURL: deref(m.RegistrationURL),
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
