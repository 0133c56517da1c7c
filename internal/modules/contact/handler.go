package contact

import (
	"fmt"
	"html"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/enovcorp/academy-core/internal/pkg/mail"
	"github.com/enovcorp/academy-core/internal/pkg/response"
)

// Input is the public contact form payload.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Handler struct {
	sender    *mail.Sender
	recipient string
	log       *zap.Logger
}

func NewHandler(sender *mail.Sender, recipient string, log *zap.Logger) *Handler {
	return &Handler{sender: sender, recipient: recipient, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.contact)
}

func (h *Handler) contact(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "JSON invalide.")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		response.BadRequest(c, "Nom, email et message requis.")
		return
	}

	if h.sender == nil || !h.sender.Configured() || h.recipient == "" {
		response.InternalError(c, "Envoi d'emails non configure.")
		return
	}

	subject := in.Subject
	if subject == "" {
		subject = "Nouveau message de contact"
	}

	msg := mail.Message{
		To:      []string{h.recipient},
		ReplyTo: in.Email,
		Subject: subject,
		HTML:    renderBody(in),
	}
	if err := h.sender.Send(msg); err != nil {
		h.log.Error("send contact mail", zap.Error(err))
		response.InternalError(c, "Envoi impossible.")
		return
	}
	response.Message(c, "Message envoye.")
}

func renderBody(in Input) string {
	var b strings.Builder
	b.WriteString("<h2>Nouveau message de contact</h2>")
	writeField(&b, "Nom", in.Name)
	writeField(&b, "Email", in.Email)
	writeField(&b, "Telephone", in.Phone)
	b.WriteString("<hr/>")
	b.WriteString("<p>" + strings.ReplaceAll(html.EscapeString(in.Message), "\n", "<br/>") + "</p>")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "<p><strong>%s :</strong> %s</p>", label, html.EscapeString(value))
}
