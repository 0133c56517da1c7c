package training

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/enovcorp/academy-core/internal/models"
)

// ErrEmptyPayload is returned when an import/replace payload parses but
// contains no records.
var ErrEmptyPayload = errors.New("aucune formation fournie")

// Normalize coerces a loosely shaped record into the fixed Training shape.
// It is total and idempotent: text fields are trimmed, blank list entries
// dropped, the status coerced to "soon" when unknown, and the six detail
// keys always present. Optional URLs end up either non-empty or empty (and
// empty marshals as absent).
func Normalize(t Training) Training {
	return Training{
		Slug:            strings.TrimSpace(t.Slug),
		Title:           strings.TrimSpace(t.Title),
		Category:        strings.TrimSpace(t.Category),
		Status:          normalizeStatus(t.Status),
		Summary:         strings.TrimSpace(t.Summary),
		Description:     strings.TrimSpace(t.Description),
		Outcomes:        normalizeList(t.Outcomes),
		Prerequisites:   normalizeList(t.Prerequisites),
		Details:         normalizeDetails(t.Details),
		CoverImage:      strings.TrimSpace(t.CoverImage),
		YoutubeEmbed:    strings.TrimSpace(t.YoutubeEmbed),
		PdfProgram:      strings.TrimSpace(t.PdfProgram),
		RegistrationURL: strings.TrimSpace(t.RegistrationURL),
	}
}

// NormalizeAll normalizes a whole collection.
func NormalizeAll(items []Training) []Training {
	out := make([]Training, len(items))
	for i, t := range items {
		out[i] = Normalize(t)
	}
	return out
}

// HasRequiredFields reports whether the record may be written remotely.
func (t Training) HasRequiredFields() bool {
	return t.Slug != "" && t.Title != "" && t.Category != ""
}

func normalizeStatus(s models.TrainingStatus) models.TrainingStatus {
	if s.IsValid() {
		return s
	}
	return models.TrainingSoon
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func normalizeDetails(d models.TrainingDetails) models.TrainingDetails {
	return models.TrainingDetails{
		Duration:    strings.TrimSpace(d.Duration),
		Level:       strings.TrimSpace(d.Level),
		Format:      strings.TrimSpace(d.Format),
		NextSession: strings.TrimSpace(d.NextSession),
		Price:       strings.TrimSpace(d.Price),
		Location:    strings.TrimSpace(d.Location),
	}
}

type wrappedPayload struct {
	Trainings []Training `json:"trainings"`
}

// DecodePayload accepts either a bare array of records or an object
// wrapping them under a "trainings" key. Records come back normalized.
// A payload that parses to zero records yields ErrEmptyPayload.
func DecodePayload(raw []byte) ([]Training, error) {
	var bare []Training
	if err := json.Unmarshal(raw, &bare); err == nil {
		if len(bare) == 0 {
			return nil, ErrEmptyPayload
		}
		return NormalizeAll(bare), nil
	}

	var wrapped wrappedPayload
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if len(wrapped.Trainings) == 0 {
		return nil, ErrEmptyPayload
	}
	return NormalizeAll(wrapped.Trainings), nil
}
