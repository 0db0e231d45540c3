package webhook

import (
	"net/http"

	"quotebot/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler handles webhook HTTP requests.
type Handler struct {
	service     *Service
	verifyToken string
	log         *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(service *Service, verifyToken string, log *logger.Logger) *Handler {
	return &Handler{service: service, verifyToken: verifyToken, log: log}
}

// HandleVerification processes Meta's one-time endpoint verification handshake.
// GET /webhook?hub.mode=subscribe&hub.verify_token=...&hub.challenge=...
func (h *Handler) HandleVerification(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")

	if mode != "subscribe" || token == "" {
		h.log.WithContext(c.Request.Context()).Warn("verification request missing hub.mode or hub.verify_token")
		c.String(http.StatusBadRequest, "Failed verification")
		return
	}

	if token != h.verifyToken {
		h.log.WithContext(c.Request.Context()).Warn("verification failed: token mismatch")
		c.String(http.StatusForbidden, "Verification token mismatch")
		return
	}

	c.String(http.StatusOK, c.Query("hub.challenge"))
}

// HandleDelivery processes an inbound message or status delivery.
// POST /webhook
//
// Every path responds 200. The status is purely an acknowledgment to the
// messaging platform: non-2xx responses trigger sender retries, so malformed
// payloads are swallowed deliberately.
func (h *Handler) HandleDelivery(c *gin.Context) {
	ctx := c.Request.Context()
	log := h.log.WithContext(ctx)

	var envelope deliveryEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		log.Warn("malformed webhook payload", "error", err)
		c.Status(http.StatusOK)
		return
	}

	if len(envelope.Entry) == 0 || len(envelope.Entry[0].Changes) == 0 {
		log.Warn("webhook payload without entry/changes, ignoring")
		c.Status(http.StatusOK)
		return
	}

	value := envelope.Entry[0].Changes[0].Value

	switch {
	case len(value.Messages) > 0:
		message := value.Messages[0]
		if message.Type != "text" {
			log.WebhookEvent("non_text_message", message.From)
			c.Status(http.StatusOK)
			return
		}
		log.WebhookEvent("text_message", message.From)
		h.service.ProcessCommand(ctx, message.From, message.Text.Body)

	case len(value.Statuses) > 0:
		status := value.Statuses[0]
		log.Info("delivery status update, ignoring", "status", status.Status, "message_id", status.ID)

	default:
		log.Warn("webhook change without messages or statuses, ignoring")
	}

	c.Status(http.StatusOK)
}
