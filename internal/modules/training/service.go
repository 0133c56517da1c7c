package training

import (
	"context"
	"errors"
	"fmt"

	"github.com/enovcorp/academy-core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MediaStore is the slice of the media layer the reconciliation needs:
// mapping public URLs back to storage paths and removing blobs.
type MediaStore interface {
	PathFromURL(raw string) (string, bool)
	Remove(ctx context.Context, paths []string) error
}

var (
	// ErrMissingFields rejects a batch containing a record without
	// slug, title, or category. Nothing is written.
	ErrMissingFields = errors.New("slug, titre et categorie requis")
	// ErrMediaCleanup aborts the replace before any row change when an
	// orphan's blobs could not be removed.
	ErrMediaCleanup = errors.New("suppression medias impossible")
)

// Service synchronizes the training collection with the row store. The
// remote collection is replaced wholesale: last writer wins, no diffing
// beyond the orphan prune.
type Service struct {
	db    *gorm.DB
	media MediaStore
}

func NewService(db *gorm.DB, media MediaStore) *Service {
	return &Service{db: db, media: media}
}

// FetchAll returns the complete collection ordered by category then title.
func (s *Service) FetchAll() ([]Training, error) {
	var rows []models.TrainingModel
	if err := s.db.Order("category ASC, title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Training, len(rows))
	for i, row := range rows {
		out[i] = FromModel(row)
	}
	return out, nil
}

// GetBySlug returns one record, or (nil, nil) when the slug is unknown.
func (s *Service) GetBySlug(slug string) (*Training, error) {
	var row models.TrainingModel
	if err := s.db.First(&row, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	t := FromModel(row)
	return &t, nil
}

// mediaRef is the slug + media projection of an existing row, the input of
// the orphan computation.
type mediaRef struct {
	Slug       string
	CoverImage *string
	PdfProgram *string
}

// ReplaceAll makes the stored collection equal to incoming. Rows whose slug
// is absent from the batch are pruned together with their media blobs; the
// blob removal runs first and a failure there aborts the call before any
// row changes, so rows never point at already-deleted files. Blobs lingering
// after a row-delete failure are accepted as a cleanup-only inconsistency.
func (s *Service) ReplaceAll(ctx context.Context, incoming []Training) error {
	batch := NormalizeAll(incoming)
	if len(batch) == 0 {
		return ErrEmptyPayload
	}
	for _, t := range batch {
		if !t.HasRequiredFields() {
			return ErrMissingFields
		}
	}

	var existing []mediaRef
	if err := s.db.Model(&models.TrainingModel{}).
		Select("slug", "cover_image", "pdf_program").
		Scan(&existing).Error; err != nil {
		return fmt.Errorf("read existing slugs: %w", err)
	}

	keep := make(map[string]struct{}, len(batch))
	for _, t := range batch {
		keep[t.Slug] = struct{}{}
	}
	orphans := orphanedRefs(existing, keep)

	if paths := resolveMediaPaths(orphans, s.media); len(paths) > 0 {
		if err := s.media.Remove(ctx, paths); err != nil {
			return fmt.Errorf("%w: %v", ErrMediaCleanup, err)
		}
	}

	rows := make([]models.TrainingModel, len(batch))
	for i, t := range batch {
		rows[i] = ToModel(t)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(orphans) > 0 {
			slugs := make([]string, len(orphans))
			for i, ref := range orphans {
				slugs[i] = ref.Slug
			}
			// Hard delete: the slug must be reusable by a later publish.
			if err := tx.Unscoped().
				Where("slug IN ?", slugs).
				Delete(&models.TrainingModel{}).Error; err != nil {
				return fmt.Errorf("delete orphan rows: %w", err)
			}
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "category", "status", "summary", "description",
				"outcomes", "prerequisites", "details",
				"cover_image", "youtube_embed", "pdf_program",
				"registration_url", "updated_at",
			}),
		}).Create(&rows).Error; err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
		return nil
	})
}

// orphanedRefs returns the refs whose slug does not appear in keep.
func orphanedRefs(existing []mediaRef, keep map[string]struct{}) []mediaRef {
	var orphans []mediaRef
	for _, ref := range existing {
		if _, ok := keep[ref.Slug]; !ok {
			orphans = append(orphans, ref)
		}
	}
	return orphans
}

// resolveMediaPaths maps orphan media URLs back to storage paths,
// deduplicated. URLs that do not point into the media bucket resolve to
// nothing and are skipped.
func resolveMediaPaths(orphans []mediaRef, media MediaStore) []string {
	if media == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var paths []string
	for _, ref := range orphans {
		for _, raw := range []*string{ref.CoverImage, ref.PdfProgram} {
			if raw == nil || *raw == "" {
				continue
			}
			path, ok := media.PathFromURL(*raw)
			if !ok {
				continue
			}
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			paths = append(paths, path)
		}
	}
	return paths
}
