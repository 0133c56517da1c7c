package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enovcorp/academy-core/internal/config"
)

func testStorageConfig(endpoint string) config.StorageConfig {
	return config.StorageConfig{
		Bucket:          "media",
		Region:          "eu-west-3",
		Endpoint:        endpoint,
		AccessKeyID:     "AKIATEST",
		SecretAccessKey: "secret",
		MediaPath:       "academy-media",
	}
}

func TestNewStoreRequiresCredentials(t *testing.T) {
	cfg := testStorageConfig("http://example.test")
	cfg.SecretAccessKey = ""

	_, err := NewStore(cfg)
	require.Error(t, err)
}

func TestPathFromURL(t *testing.T) {
	store, err := NewStore(testStorageConfig("http://example.test"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			name:   "bucket url",
			raw:    "http://example.test/media/academy-media/web/1-cover.jpg",
			want:   "academy-media/web/1-cover.jpg",
			wantOK: true,
		},
		{
			name:   "encoded segment",
			raw:    "http://example.test/media/academy-media/web/1-co%C3%BBt.pdf",
			want:   "academy-media/web/1-coût.pdf",
			wantOK: true,
		},
		{name: "foreign host", raw: "http://elsewhere.example/media/academy-media/x.jpg"},
		{name: "outside media prefix", raw: "http://example.test/media/backups/x.jpg"},
		{name: "wrong bucket", raw: "http://example.test/other/academy-media/x.jpg"},
		{name: "not a url", raw: "/Academy_images/local.jpg"},
		{name: "blank", raw: "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := store.PathFromURL(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathFromURLCustomDomain(t *testing.T) {
	cfg := testStorageConfig("http://example.test")
	cfg.CustomDomain = "https://cdn.enov.ci"
	store, err := NewStore(cfg)
	require.NoError(t, err)

	got, ok := store.PathFromURL("https://cdn.enov.ci/academy-media/web/1-cover.jpg")
	require.True(t, ok)
	assert.Equal(t, "academy-media/web/1-cover.jpg", got)

	_, ok = store.PathFromURL("https://cdn.enov.ci/backups/dump.sql")
	assert.False(t, ok)
}

func TestUploadSignsAndReturnsURL(t *testing.T) {
	var received *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Clone(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store, err := NewStore(testStorageConfig(server.URL))
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "academy-media/web/1-cover.jpg", []byte("fake-jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/media/academy-media/web/1-cover.jpg", url)

	require.NotNil(t, received)
	assert.Equal(t, http.MethodPut, received.Method)
	assert.Equal(t, "/media/academy-media/web/1-cover.jpg", received.URL.Path)
	assert.Equal(t, "image/jpeg", received.Header.Get("Content-Type"))
	assert.NotEmpty(t, received.Header.Get("X-Amz-Content-Sha256"))
	assert.True(t, strings.HasPrefix(received.Header.Get("Authorization"), "AWS4-HMAC-SHA256 Credential=AKIATEST/"))
}

func TestUploadReportsRemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "AccessDenied", http.StatusForbidden)
	}))
	defer server.Close()

	store, err := NewStore(testStorageConfig(server.URL))
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "academy-media/x.jpg", []byte("x"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
}

func TestDeleteTreatsNotFoundAsGone(t *testing.T) {
	var deletes int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deletes++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store, err := NewStore(testStorageConfig(server.URL))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "academy-media/x.jpg"))
	assert.Equal(t, 1, deletes)
}

func TestRemoveStopsAtFirstFailure(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		if strings.Contains(r.URL.Path, "bad") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	store, err := NewStore(testStorageConfig(server.URL))
	require.NoError(t, err)

	err = store.Remove(context.Background(), []string{
		"academy-media/ok.jpg",
		"academy-media/bad.jpg",
		"academy-media/never.jpg",
	})
	require.Error(t, err)
	assert.Len(t, calls, 2, "the batch stops at the first failed delete")
}
