package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/enovcorp/academy-core/internal/config"
	"github.com/enovcorp/academy-core/internal/middleware"
	"github.com/enovcorp/academy-core/internal/pkg/response"
)

// sessionMaxAge matches the admin editor's working session.
const sessionMaxAge = 12 * 60 * 60

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Handler exchanges the single operator credential pair for the admin key,
// delivered as an http-only cookie so the browser editor never stores the
// key itself.
type Handler struct {
	cfg config.AdminConfig
	log *zap.Logger
}

func NewHandler(cfg config.AdminConfig, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/login", h.login)
	rg.POST("/admin/logout", h.logout)
}

func (h *Handler) login(c *gin.Context) {
	if h.cfg.Key == "" || h.cfg.Username == "" || h.cfg.PasswordHash == "" {
		response.InternalError(c, "Acces admin non configure.")
		return
	}

	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "JSON invalide.")
		return
	}
	in.Username = strings.TrimSpace(in.Username)

	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(h.cfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.cfg.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		h.log.Warn("admin login refused", zap.String("username", in.Username), zap.String("ip", c.ClientIP()))
		response.Unauthorized(c, "Identifiants invalides.")
		return
	}

	h.setSessionCookie(c, h.cfg.Key, sessionMaxAge)
	response.Message(c, "Connexion reussie.")
}

func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.Message(c, "Deconnexion reussie.")
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminSessionCookie, value, maxAge, "/", "", c.Request.TLS != nil, true)
}
