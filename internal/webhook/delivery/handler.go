package delivery

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"channelsync-backend/internal/webhook/usecase"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles the signed inbound webhook and its audit endpoints
type WebhookHandler struct {
	webhookUsecase usecase.WebhookUsecase
	secret         string
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookUsecase usecase.WebhookUsecase, secret string) *WebhookHandler {
	return &WebhookHandler{
		webhookUsecase: webhookUsecase,
		secret:         secret,
	}
}

// Receive verifies the HMAC signature over the raw body and logs the event
// either way. Inauthentic deliveries get a 401 after logging.
// POST /api/webhooks/fireflies
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	signature := c.GetHeader("X-Hub-Signature")
	valid := usecase.VerifySignature(h.secret, body, signature)

	entry, err := h.webhookUsecase.LogEvent(body, signature, valid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log event"})
		return
	}

	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature", "id": entry.ID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event logged", "id": entry.ID})
}

// Process fetches and persists the derived content of a logged event
// POST /api/webhooks/fireflies/:id/process
func (h *WebhookHandler) Process(c *gin.Context) {
	note, err := h.webhookUsecase.ProcessEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "webhook event not found"})
		case errors.Is(err, usecase.ErrAlreadyProcessed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "webhook event already processed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, note)
}

// ListEvents returns a page of webhook deliveries
// GET /api/webhook-events?limit=20&offset=0
func (h *WebhookHandler) ListEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	events, total, err := h.webhookUsecase.ListEvents(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  total,
	})
}
