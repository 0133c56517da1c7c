package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		contentType string
		wantExt     string
		wantErr     bool
	}{
		{"jpeg image", KindImage, "image/jpeg", ".jpg", false},
		{"jpg alias", KindImage, "image/jpg", ".jpg", false},
		{"png image", KindImage, "image/png", ".png", false},
		{"charset suffix ignored", KindImage, "image/png; charset=binary", ".png", false},
		{"case insensitive", KindPdf, "Application/PDF", ".pdf", false},
		{"pdf as image refused", KindImage, "application/pdf", "", true},
		{"image as pdf refused", KindPdf, "image/png", "", true},
		{"webp refused", KindImage, "image/webp", "", true},
		{"unknown kind", Kind("video"), "video/mp4", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ValidateUpload(tt.kind, tt.contentType)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestSanitizeSegment(t *testing.T) {
	assert.Equal(t, "webfullstack", SanitizeSegment("Web Fullstack"), "spaces are stripped, not replaced")
	assert.Equal(t, "caf.v2_final-ok", SanitizeSegment("Café.V2_FINAL-ok"))
	assert.Equal(t, "mon-slug-2026", SanitizeSegment("  Mon-Slug-2026  "))
	assert.Equal(t, "", SanitizeSegment("///"))
}

func TestBuildObjectKey(t *testing.T) {
	now := time.Unix(1756710000, 0)

	key := BuildObjectKey("academy-media", "Web Fullstack", "Ma Photo.JPEG", ".jpg", now)
	assert.Equal(t, "academy-media/webfullstack/1756710000-maphoto.jpg", key)
}

func TestBuildObjectKeyDefaults(t *testing.T) {
	now := time.Unix(100, 0)

	t.Run("missing slug falls back to academy", func(t *testing.T) {
		key := BuildObjectKey("academy-media", "", "cover.png", ".png", now)
		assert.Equal(t, "academy-media/academy/100-cover.png", key)
	})

	t.Run("unusable name falls back to media", func(t *testing.T) {
		key := BuildObjectKey("academy-media", "web", "???.png", ".png", now)
		assert.Equal(t, "academy-media/web/100-media.png", key)
	})

	t.Run("no media path", func(t *testing.T) {
		key := BuildObjectKey("", "web", "cover.png", ".png", now)
		assert.Equal(t, "web/100-cover.png", key)
	})
}

func TestBuildObjectKeyUsesValidatedExtension(t *testing.T) {
	now := time.Unix(100, 0)

	// The stored extension comes from the validated content type, never
	// from the uploaded file name.
	key := BuildObjectKey("academy-media", "web", "payload.exe", ".jpg", now)
	assert.Equal(t, "academy-media/web/100-payload.jpg", key)
}
