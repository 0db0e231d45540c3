// Package webhook provides the inbound webhook bounded context: it classifies
// WhatsApp Cloud API deliveries and drives the extraction, rendering, email,
// and reply collaborators for text commands.
package webhook

import (
	apphttp "quotebot/internal/http"
	"quotebot/platform/logger"
)

// Module is the webhook bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the webhook module with all its dependencies.
func NewModule(ext Extractor, renderer DocumentRenderer, mail MailSender, replies ReplySender, verifyToken string, log *logger.Logger) *Module {
	service := NewService(ext, renderer, mail, replies, log)
	handler := NewHandler(service, verifyToken, log)

	return &Module{handler: handler}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// RegisterRoutes mounts webhook routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Engine.Group("/webhook")
	group.Use(ctx.WebhookRateLimiter.RateLimit())
	group.GET("", m.handler.HandleVerification)
	group.POST("", m.handler.HandleDelivery)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
