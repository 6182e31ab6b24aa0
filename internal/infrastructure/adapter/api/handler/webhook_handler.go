package handler

import (
	"io"
	"net/http"

	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/reconcile"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
)

// WebhookHandler receives asynchronous provider callbacks
type WebhookHandler struct {
	finalizer *reconcile.WebhookFinalizer
	logger    coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(finalizer *reconcile.WebhookFinalizer, logger coreport.Logger) *WebhookHandler {
	return &WebhookHandler{finalizer: finalizer, logger: logger}
}

// Receive handles the POST /webhook/:provider endpoint. It acknowledges with
// 200 in every case the provider should not retry; only a store failure
// answers 500 to request a redelivery.
func (h *WebhookHandler) Receive(c *gin.Context) {
	provider := c.Param("provider")

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	disposition, err := h.finalizer.HandleCallback(c.Request.Context(), provider, payload)
	if err != nil {
		h.logger.Error("Callback processing failed", map[string]any{
			"provider": provider,
			"error":    err.Error(),
		})
		c.Status(http.StatusInternalServerError)
		return
	}

	metrics.CallbacksTotal.WithLabelValues(provider, string(disposition)).Inc()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
