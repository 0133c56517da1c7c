// Package draft keeps the operator's local working copy of the training
// catalog. Drafts live in a JSON cache file and only reach the remote
// authority through an explicit publish.
package draft

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/enovcorp/academy-core/internal/modules/training"
)

//go:embed defaults.json
var defaultsJSON []byte

// Draft is a catalog entry plus a local-only identity. The identity keeps
// list edits stable while the slug is being typed; it is stripped before
// anything leaves the machine.
type Draft struct {
	ID string `json:"_id"`
	training.Training
}

// Store is the local draft collection backed by one cache file. Loading
// never fails: a missing or unparsable cache falls back to the embedded
// defaults, so the editor always opens on something editable.
type Store struct {
	path   string
	drafts []Draft
}

// Open loads the draft collection from path, falling back to the embedded
// defaults when the cache is absent or corrupt.
func Open(path string) *Store {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		s.drafts = defaultDrafts()
		return s
	}
	items, err := training.DecodePayload(raw)
	if err != nil {
		s.drafts = defaultDrafts()
		return s
	}
	s.drafts = wrap(items)
	return s
}

func defaultDrafts() []Draft {
	items, err := training.DecodePayload(defaultsJSON)
	if err != nil {
		// The embedded defaults are part of the build; an empty set here
		// still honors the never-empty rule below.
		return []Draft{blankDraft("nouvelle-formation-1")}
	}
	return wrap(items)
}

func wrap(items []training.Training) []Draft {
	drafts := make([]Draft, len(items))
	for i, t := range items {
		drafts[i] = Draft{ID: uuid.NewString(), Training: t}
	}
	return drafts
}

func blankDraft(slug string) Draft {
	return Draft{
		ID: uuid.NewString(),
		Training: training.Normalize(training.Training{
			Slug:  slug,
			Title: "Nouvelle formation",
		}),
	}
}

// Drafts returns the working set in order.
func (s *Store) Drafts() []Draft { return s.drafts }

// Trainings returns the working set stripped of local identities, ready to
// publish or export.
func (s *Store) Trainings() []training.Training {
	items := make([]training.Training, len(s.drafts))
	for i, d := range s.drafts {
		items[i] = d.Training
	}
	return items
}

// Find returns the draft matching id or slug.
func (s *Store) Find(ref string) (Draft, bool) {
	for _, d := range s.drafts {
		if d.ID == ref || d.Slug == ref {
			return d, true
		}
	}
	return Draft{}, false
}

// Create prepends a blank draft with a generated placeholder slug.
func (s *Store) Create() Draft {
	d := blankDraft(s.nextPlaceholderSlug())
	s.drafts = append([]Draft{d}, s.drafts...)
	return d
}

func (s *Store) nextPlaceholderSlug() string {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("nouvelle-formation-%d", n)
		if !s.hasSlug(candidate) {
			return candidate
		}
	}
}

func (s *Store) hasSlug(slug string) bool {
	for _, d := range s.drafts {
		if d.Slug == slug {
			return true
		}
	}
	return false
}

// Duplicate copies the draft matching ref, inserting the copy right after
// it with a "-copy" slug suffix (numbered when taken) and a "(copie)"
// title suffix.
func (s *Store) Duplicate(ref string) (Draft, error) {
	for i, d := range s.drafts {
		if d.ID != ref && d.Slug != ref {
			continue
		}
		dup := d
		dup.ID = uuid.NewString()
		dup.Slug = s.copySlug(d.Slug)
		if dup.Title != "" {
			dup.Title = dup.Title + " (copie)"
		}
		s.drafts = append(s.drafts[:i+1], append([]Draft{dup}, s.drafts[i+1:]...)...)
		return dup, nil
	}
	return Draft{}, fmt.Errorf("formation %q introuvable", ref)
}

func (s *Store) copySlug(base string) string {
	if base == "" {
		return s.nextPlaceholderSlug()
	}
	candidate := base + "-copy"
	if !s.hasSlug(candidate) {
		return candidate
	}
	for n := 2; ; n++ {
		candidate = fmt.Sprintf("%s-copy-%d", base, n)
		if !s.hasSlug(candidate) {
			return candidate
		}
	}
}

// Remove deletes the draft matching ref. The working set never goes empty:
// removing the last draft leaves one blank draft behind.
func (s *Store) Remove(ref string) error {
	for i, d := range s.drafts {
		if d.ID != ref && d.Slug != ref {
			continue
		}
		s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
		if len(s.drafts) == 0 {
			s.drafts = []Draft{blankDraft(s.nextPlaceholderSlug())}
		}
		return nil
	}
	return fmt.Errorf("formation %q introuvable", ref)
}

// Update replaces the content of the draft matching ref, keeping its local
// identity and position.
func (s *Store) Update(ref string, t training.Training) error {
	for i, d := range s.drafts {
		if d.ID != ref && d.Slug != ref {
			continue
		}
		s.drafts[i].Training = training.Normalize(t)
		return nil
	}
	return fmt.Errorf("formation %q introuvable", ref)
}

// Replace swaps in a whole new collection, re-assigning local identities.
func (s *Store) Replace(items []training.Training) {
	if len(items) == 0 {
		s.drafts = []Draft{blankDraft("nouvelle-formation-1")}
		return
	}
	s.drafts = wrap(training.NormalizeAll(items))
}

// Import merges a JSON payload (bare array or wrapped) into the store,
// replacing the working set. Returns how many records were imported.
func (s *Store) Import(raw []byte) (int, error) {
	items, err := training.DecodePayload(raw)
	if err != nil {
		return 0, err
	}
	s.Replace(items)
	return len(items), nil
}

// Reset discards the working set and removes the cache file, so the next
// Open starts from the embedded defaults again.
func (s *Store) Reset() error {
	s.drafts = defaultDrafts()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Save writes the working set to the cache file, identities stripped so the
// file round-trips through Import unchanged.
func (s *Store) Save() error {
	raw, err := json.MarshalIndent(s.Trainings(), "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// Issues reports advisory problems with the working set: duplicate slugs
// and missing required fields. Drafts may carry issues locally; publishing
// is where they become blocking.
func (s *Store) Issues() []string {
	var issues []string
	seen := make(map[string]int)
	for _, d := range s.drafts {
		seen[d.Slug]++
	}
	for _, d := range s.drafts {
		label := d.Slug
		if label == "" {
			label = d.Title
		}
		if seen[d.Slug] > 1 {
			issues = append(issues, fmt.Sprintf("slug duplique: %s", d.Slug))
			seen[d.Slug] = 0
		}
		if !d.HasRequiredFields() {
			issues = append(issues, fmt.Sprintf("champs requis manquants (slug, titre, categorie): %s", label))
		}
	}
	return issues
}
