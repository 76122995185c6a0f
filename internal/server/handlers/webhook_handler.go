package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	service "github.com/mamadbah2/factory/internal/service/whatsapp"
	client "github.com/mamadbah2/factory/pkg/clients/whatsapp"
)

// WebhookHandler exposes the WhatsApp query channel.
type WebhookHandler struct {
	messaging service.MessagingService
	logger    *zap.Logger
}

func NewWebhookHandler(messaging service.MessagingService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{messaging: messaging, logger: logger}
}

// Verify answers Meta's subscription handshake with the challenge.
func (h *WebhookHandler) Verify(c *gin.Context) {
	challenge, err := h.messaging.VerifyWebhookToken(
		c.Query("hub.mode"),
		c.Query("hub.verify_token"),
		c.Query("hub.challenge"),
	)
	if err != nil {
		h.logger.Warn("webhook handshake refused", zap.String("mode", c.Query("hub.mode")), zap.Error(err))
		c.Status(http.StatusForbidden)
		return
	}
	c.String(http.StatusOK, challenge)
}

// Receive handles a callback. Reply failures are logged and the callback is
// still acknowledged so Meta does not redeliver it.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload client.WebhookPayload
	if !bindJSON(c, h.logger, &payload) {
		return
	}

	if err := h.messaging.HandleWebhook(c.Request.Context(), payload); err != nil {
		h.logger.Error("command reply failed", zap.String("object", payload.Object), zap.Error(err))
	}
	c.Status(http.StatusOK)
}

// SendSummary sends the weekly summary to the manager immediately.
func (h *WebhookHandler) SendSummary(c *gin.Context) {
	err := h.messaging.SendSummary(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, gin.H{"sent": true})
	case errors.Is(err, service.ErrNoRecipient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no_recipient", "message": err.Error()})
	default:
		h.logger.Error("summary delivery failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "delivery_failed", "message": err.Error()})
	}
}
