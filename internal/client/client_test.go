package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enovcorp/academy-core/internal/middleware"
	"github.com/enovcorp/academy-core/internal/modules/training"
)

func TestFetchTrainings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/admin/academy/trainings", r.URL.Path)
		assert.Equal(t, "s3cret", r.Header.Get(middleware.AdminKeyHeader))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":1,"data":[{"slug":" web ","title":"Web","category":"Dev","status":"available"}]}`))
	}))
	defer server.Close()

	c := New(server.URL, "s3cret")
	items, err := c.FetchTrainings(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "web", items[0].Slug, "remote records come back normalized")
}

func TestPublishSendsWholeCollection(t *testing.T) {
	var got []training.Training
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/admin/academy/trainings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":1,"count":2}`))
	}))
	defer server.Close()

	c := New(server.URL, "s3cret")
	err := c.Publish(context.Background(), []training.Training{
		{Slug: "a", Title: "A", Category: "C"},
		{Slug: "b", Title: "B", Category: "C"},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPublishSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":0,"code":400,"message":"Slug, titre et categorie requis pour chaque formation."}`))
	}))
	defer server.Close()

	c := New(server.URL, "s3cret")
	err := c.Publish(context.Background(), []training.Training{{Slug: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Slug, titre et categorie requis")
	assert.Contains(t, err.Error(), "status=400")
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/academy/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "web", r.FormValue("slug"))
		assert.Equal(t, "image", r.FormValue("kind"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cover.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))

		_, _ = w.Write([]byte(`{"ok":1,"url":"https://cdn/academy-media/web/1-cover.jpg","path":"academy-media/web/1-cover.jpg"}`))
	}))
	defer server.Close()

	c := New(server.URL, "s3cret")
	result, err := c.Upload(context.Background(), "cover.jpg",
		strings.NewReader("fake-jpeg"), "web", "image", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/academy-media/web/1-cover.jpg", result.URL)
	assert.Equal(t, "academy-media/web/1-cover.jpg", result.Path)
}

func TestClientRefusesWithoutConfig(t *testing.T) {
	_, err := New("", "key").FetchTrainings(context.Background())
	require.Error(t, err)

	_, err = New("http://localhost:2333", "").FetchTrainings(context.Background())
	require.Error(t, err)
}
