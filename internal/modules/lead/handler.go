package lead

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/enovcorp/academy-core/internal/pkg/response"
)

type Handler struct {
	db  *gorm.DB
	log *zap.Logger
	dev bool
}

func NewHandler(db *gorm.DB, log *zap.Logger, dev bool) *Handler {
	return &Handler{db: db, log: log, dev: dev}
}

// RegisterRoutes mounts the public lead endpoints. They are writes, so the
// response cache never sees them.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/academy/register", h.register)
	rg.POST("/academy/notify", h.notify)
}

func (h *Handler) register(c *gin.Context) {
	var in RegistrationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "JSON invalide.")
		return
	}
	in = in.normalized()
	if !in.valid() {
		response.BadRequest(c, "Formation, prenom, nom et email requis.")
		return
	}

	row := in.toModel()
	if err := h.db.Create(&row).Error; err != nil {
		h.log.Error("store registration", zap.String("slug", in.TrainingSlug), zap.Error(err))
		h.storeError(c, err)
		return
	}
	response.Message(c, "Inscription enregistree.")
}

func (h *Handler) notify(c *gin.Context) {
	var in NotificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "JSON invalide.")
		return
	}
	in = in.normalized()
	if !in.valid() {
		response.BadRequest(c, "Formation, nom et email requis.")
		return
	}

	row := in.toModel()
	if err := h.db.Create(&row).Error; err != nil {
		h.log.Error("store notification", zap.String("slug", in.TrainingSlug), zap.Error(err))
		h.storeError(c, err)
		return
	}
	response.Message(c, "Demande enregistree.")
}

// storeError keeps database details out of public responses except in
// development.
func (h *Handler) storeError(c *gin.Context, err error) {
	msg := "Enregistrement impossible."
	if h.dev {
		msg = msg + " " + err.Error()
	}
	response.InternalError(c, msg)
}
