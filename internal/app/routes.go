package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/enovcorp/academy-core/internal/middleware"
	"github.com/enovcorp/academy-core/internal/modules/auth"
	"github.com/enovcorp/academy-core/internal/modules/contact"
	"github.com/enovcorp/academy-core/internal/modules/lead"
	"github.com/enovcorp/academy-core/internal/modules/media"
	"github.com/enovcorp/academy-core/internal/modules/training"
	pkgmail "github.com/enovcorp/academy-core/internal/pkg/mail"
	pkgredis "github.com/enovcorp/academy-core/internal/pkg/redis"
)

func (a *App) registerRoutes(rc *pkgredis.Client) error {
	var rdb *redis.Client
	if rc != nil {
		rdb = rc.Raw()
	}

	mediaStore, err := a.buildMediaStore()
	if err != nil {
		return err
	}

	var blobStore training.MediaStore
	if mediaStore != nil {
		blobStore = mediaStore
	}
	trainingService := training.NewService(a.db, blobStore)
	trainingHandler := training.NewHandler(trainingService, a.logger, rdb)
	authHandler := auth.NewHandler(a.cfg.Admin, a.logger)
	leadHandler := lead.NewHandler(a.db, a.logger, a.cfg.IsDev())
	contactHandler := contact.NewHandler(pkgmail.New(a.cfg.Mail), a.cfg.Mail.Recipient, a.logger)

	adminKey := middleware.AdminKey(a.cfg.Admin.Key)

	api := a.router.Group("/api/v1")

	// Public reads go through the short-TTL response cache; writes and
	// admin routes bypass it entirely.
	public := api.Group("", middleware.HTTPCache(rdb, middleware.HTTPCacheOptions{}))
	trainingHandler.RegisterPublicRoutes(public)

	leadHandler.RegisterRoutes(api)
	contactHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)

	trainingHandler.RegisterAdminRoutes(api, adminKey)
	if mediaStore != nil {
		mediaHandler := media.NewHandler(mediaStore, a.cfg.Storage.MediaPath, a.logger)
		mediaHandler.RegisterAdminRoutes(api, adminKey)
	}
	return nil
}

// buildMediaStore returns nil when storage is not configured; uploads are
// then rejected and the orphan prune skips blob deletion.
func (a *App) buildMediaStore() (*media.Store, error) {
	if a.cfg.Storage.Bucket == "" {
		a.logger.Warn("storage not configured, media uploads disabled")
		return nil, nil
	}
	store, err := media.NewStore(a.cfg.Storage)
	if err != nil {
		return nil, err
	}
	return store, nil
}
