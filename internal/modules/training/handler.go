package training

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/enovcorp/academy-core/internal/middleware"
	"github.com/enovcorp/academy-core/internal/pkg/response"
)

// maxReplaceBody bounds the admin publish payload. The full catalog with
// long descriptions sits well under this.
const maxReplaceBody = 8 << 20

type Handler struct {
	service *Service
	log     *zap.Logger
	rdb     *redis.Client
}

func NewHandler(service *Service, log *zap.Logger, rdb *redis.Client) *Handler {
	return &Handler{service: service, log: log, rdb: rdb}
}

// RegisterPublicRoutes mounts the read-only catalog endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/academy/trainings", h.listTrainings)
	rg.GET("/academy/trainings/:slug", h.getTraining)
}

// RegisterAdminRoutes mounts the sync endpoints behind the admin key.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	admin := rg.Group("/admin/academy", auth)
	admin.GET("/trainings", h.adminList)
	admin.PUT("/trainings", h.replaceTrainings)
}

func (h *Handler) listTrainings(c *gin.Context) {
	items, err := h.service.FetchAll()
	if err != nil {
		h.log.Error("list trainings", zap.Error(err))
		response.InternalError(c, "Lecture du catalogue impossible.")
		return
	}
	response.OK(c, items)
}

func (h *Handler) getTraining(c *gin.Context) {
	item, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		h.log.Error("get training", zap.String("slug", c.Param("slug")), zap.Error(err))
		response.InternalError(c, "Lecture du catalogue impossible.")
		return
	}
	if item == nil {
		response.NotFound(c, "Formation introuvable.")
		return
	}

	if c.Query("render") == "html" {
		rendered, err := RenderDescription(item.Description)
		if err != nil {
			h.log.Error("render description", zap.String("slug", item.Slug), zap.Error(err))
			response.InternalError(c, "Rendu impossible.")
			return
		}
		c.JSON(200, gin.H{"ok": 1, "data": item, "descriptionHtml": rendered})
		return
	}
	response.OK(c, item)
}

// adminList returns the same collection as the public list but without the
// response cache in front, so the editor always sees the latest publish.
func (h *Handler) adminList(c *gin.Context) {
	items, err := h.service.FetchAll()
	if err != nil {
		h.log.Error("admin list trainings", zap.Error(err))
		response.InternalError(c, "Lecture du catalogue impossible.")
		return
	}
	response.OK(c, items)
}

func (h *Handler) replaceTrainings(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxReplaceBody))
	if err != nil {
		response.BadRequest(c, "Corps de requete illisible.")
		return
	}

	batch, err := DecodePayload(raw)
	if err != nil {
		if errors.Is(err, ErrEmptyPayload) {
			response.BadRequest(c, "Aucune formation fournie.")
			return
		}
		response.BadRequest(c, "JSON invalide.")
		return
	}

	if err := h.service.ReplaceAll(c.Request.Context(), batch); err != nil {
		switch {
		case errors.Is(err, ErrEmptyPayload):
			response.BadRequest(c, "Aucune formation fournie.")
		case errors.Is(err, ErrMissingFields):
			response.BadRequest(c, "Slug, titre et categorie requis pour chaque formation.")
		case errors.Is(err, ErrMediaCleanup):
			h.log.Error("replace trainings media cleanup", zap.Error(err))
			response.InternalError(c, "Suppression des medias impossible.")
		default:
			h.log.Error("replace trainings", zap.Error(err))
			response.InternalError(c, "Ecriture impossible.")
		}
		return
	}

	if h.rdb != nil {
		if n, err := middleware.PurgeHTTPCache(c.Request.Context(), h.rdb); err != nil {
			h.log.Warn("purge response cache", zap.Error(err))
		} else if n > 0 {
			h.log.Info("purged response cache", zap.Int64("keys", n))
		}
	}

	response.OK(c, gin.H{"ok": 1, "count": len(batch)})
}
