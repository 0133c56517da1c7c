package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enovcorp/academy-core/internal/models"
)

func TestNormalizeTrimsAndCoerces(t *testing.T) {
	in := Training{
		Slug:          "  web-fullstack  ",
		Title:         " Web Fullstack ",
		Category:      "Dev ",
		Status:        "banana",
		Summary:       "  resume  ",
		Outcomes:      []string{" a ", "", "b", "   "},
		Prerequisites: []string{},
		Details:       models.TrainingDetails{Duration: " 8 semaines "},
		CoverImage:    "  ",
	}

	got := Normalize(in)

	assert.Equal(t, "web-fullstack", got.Slug)
	assert.Equal(t, "Web Fullstack", got.Title)
	assert.Equal(t, "Dev", got.Category)
	assert.Equal(t, models.TrainingSoon, got.Status)
	assert.Equal(t, "resume", got.Summary)
	assert.Equal(t, []string{"a", "b"}, got.Outcomes)
	assert.Empty(t, got.Prerequisites)
	assert.Equal(t, "8 semaines", got.Details.Duration)
	assert.Empty(t, got.CoverImage)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	in := Training{
		Slug:     " data-automation ",
		Title:    "Data Automation",
		Category: "Data",
		Status:   models.TrainingAvailable,
		Outcomes: []string{" pipeline ", ""},
	}

	once := Normalize(in)
	twice := Normalize(once)

	assert.Equal(t, once, twice)
}

func TestNormalizeKeepsValidStatus(t *testing.T) {
	for _, status := range []models.TrainingStatus{
		models.TrainingAvailable, models.TrainingSoon, models.TrainingClosed,
	} {
		got := Normalize(Training{Status: status})
		assert.Equal(t, status, got.Status)
	}
}

func TestHasRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		in   Training
		want bool
	}{
		{"complete", Training{Slug: "a", Title: "b", Category: "c"}, true},
		{"missing slug", Training{Title: "b", Category: "c"}, false},
		{"missing title", Training{Slug: "a", Category: "c"}, false},
		{"missing category", Training{Slug: "a", Title: "b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.HasRequiredFields())
		})
	}
}

func TestDecodePayloadBareArray(t *testing.T) {
	raw := []byte(`[{"slug":" web ","title":"Web","category":"Dev","status":"available"}]`)

	items, err := DecodePayload(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "web", items[0].Slug)
	assert.Equal(t, models.TrainingAvailable, items[0].Status)
}

func TestDecodePayloadWrapped(t *testing.T) {
	raw := []byte(`{"trainings":[{"slug":"web","title":"Web","category":"Dev"}]}`)

	items, err := DecodePayload(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "web", items[0].Slug)
}

func TestDecodePayloadEmpty(t *testing.T) {
	for _, raw := range []string{`[]`, `{"trainings":[]}`, `{}`} {
		_, err := DecodePayload([]byte(raw))
		assert.ErrorIs(t, err, ErrEmptyPayload, "payload %s", raw)
	}
}

func TestDecodePayloadInvalidJSON(t *testing.T) {
	_, err := DecodePayload([]byte(`{not json`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyPayload)
}

func TestMediaURLs(t *testing.T) {
	tr := Training{CoverImage: "https://cdn/img.jpg", PdfProgram: "https://cdn/p.pdf"}
	assert.Equal(t, []string{"https://cdn/img.jpg", "https://cdn/p.pdf"}, tr.MediaURLs())
	assert.Empty(t, Training{}.MediaURLs())
}

func TestModelRoundTrip(t *testing.T) {
	in := Normalize(Training{
		Slug:         "web",
		Title:        "Web",
		Category:     "Dev",
		Status:       models.TrainingClosed,
		Outcomes:     []string{"a"},
		CoverImage:   "https://cdn/img.jpg",
		YoutubeEmbed: "",
	})

	model := ToModel(in)
	require.NotNil(t, model.CoverImage)
	assert.Nil(t, model.YoutubeEmbed, "blank optionals are stored as NULL")

	back := FromModel(model)
	assert.Equal(t, in, back)
}
