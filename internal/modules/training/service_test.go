package training

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMediaStore struct {
	prefix  string
	removed [][]string
}

func (f *fakeMediaStore) PathFromURL(raw string) (string, bool) {
	if len(raw) > len(f.prefix) && raw[:len(f.prefix)] == f.prefix {
		return raw[len(f.prefix):], true
	}
	return "", false
}

func (f *fakeMediaStore) Remove(_ context.Context, paths []string) error {
	f.removed = append(f.removed, paths)
	return nil
}

func ptr(s string) *string { return &s }

func TestOrphanedRefs(t *testing.T) {
	existing := []mediaRef{
		{Slug: "kept"},
		{Slug: "gone-a"},
		{Slug: "gone-b"},
	}
	keep := map[string]struct{}{"kept": {}}

	orphans := orphanedRefs(existing, keep)

	assert.Len(t, orphans, 2)
	assert.Equal(t, "gone-a", orphans[0].Slug)
	assert.Equal(t, "gone-b", orphans[1].Slug)
}

func TestOrphanedRefsNoneWhenAllKept(t *testing.T) {
	existing := []mediaRef{{Slug: "a"}, {Slug: "b"}}
	keep := map[string]struct{}{"a": {}, "b": {}}

	assert.Empty(t, orphanedRefs(existing, keep))
}

func TestResolveMediaPaths(t *testing.T) {
	store := &fakeMediaStore{prefix: "https://cdn.enov.ci/"}
	orphans := []mediaRef{
		{
			Slug:       "gone",
			CoverImage: ptr("https://cdn.enov.ci/academy-media/gone/cover.jpg"),
			PdfProgram: ptr("https://cdn.enov.ci/academy-media/gone/program.pdf"),
		},
		{
			Slug:       "external",
			CoverImage: ptr("https://elsewhere.example/img.jpg"),
		},
		{Slug: "bare"},
	}

	paths := resolveMediaPaths(orphans, store)

	assert.Equal(t, []string{
		"academy-media/gone/cover.jpg",
		"academy-media/gone/program.pdf",
	}, paths, "foreign URLs and missing media resolve to nothing")
}

func TestResolveMediaPathsDeduplicates(t *testing.T) {
	store := &fakeMediaStore{prefix: "https://cdn.enov.ci/"}
	shared := ptr("https://cdn.enov.ci/academy-media/shared.pdf")
	orphans := []mediaRef{
		{Slug: "a", PdfProgram: shared},
		{Slug: "b", PdfProgram: shared},
	}

	paths := resolveMediaPaths(orphans, store)

	assert.Equal(t, []string{"academy-media/shared.pdf"}, paths)
}

func TestResolveMediaPathsNilStore(t *testing.T) {
	orphans := []mediaRef{{Slug: "gone", CoverImage: ptr("https://cdn/img.jpg")}}
	assert.Nil(t, resolveMediaPaths(orphans, nil))
}
