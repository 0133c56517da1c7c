package media

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/enovcorp/academy-core/internal/pkg/response"
)

// maxUploadBytes caps an incoming media file. Covers and PDF programs are
// expected in the low megabytes.
const maxUploadBytes = 20 << 20

type Handler struct {
	store     *Store
	mediaPath string
	log       *zap.Logger
}

func NewHandler(store *Store, mediaPath string, log *zap.Logger) *Handler {
	return &Handler{store: store, mediaPath: mediaPath, log: log}
}

// RegisterAdminRoutes mounts the upload endpoint behind the admin key.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	admin := rg.Group("/admin/academy", auth)
	admin.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	if h.store == nil {
		response.InternalError(c, "Stockage non configure.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Fichier manquant.")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.BadRequest(c, "Fichier trop volumineux.")
		return
	}

	slug := strings.TrimSpace(c.PostForm("slug"))
	if slug == "" {
		response.BadRequest(c, "Slug manquant.")
		return
	}

	kind := Kind(c.PostForm("kind"))
	if kind != KindImage && kind != KindPdf {
		response.BadRequest(c, "Type invalide.")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, err := ValidateUpload(kind, contentType)
	if err != nil {
		response.BadRequest(c, "Type de fichier non accepte.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Fichier illisible.")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		response.BadRequest(c, "Fichier illisible.")
		return
	}
	if len(payload) > maxUploadBytes {
		response.BadRequest(c, "Fichier trop volumineux.")
		return
	}

	key := BuildObjectKey(h.mediaPath, slug, fileHeader.Filename, ext, time.Now())
	url, err := h.store.Upload(c.Request.Context(), key, payload, contentType)
	if err != nil {
		h.log.Error("media upload", zap.String("key", key), zap.Error(err))
		response.InternalError(c, "Televersement impossible.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": 1, "url": url, "path": key})
}
