package api

import (
	"errors"
	"io"
	"net/http"

	"hbot-booking/internal/handler/httperr"
	"hbot-booking/internal/pkg/errs"
	"hbot-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// Well above any documented Stripe event size; a bigger body is not a real
// event and gets an explicit 413 rather than a truncated signature check.
const maxWebhookBodyBytes = 1 << 20

type WebhookHandler struct {
	reconcile commands.ReconcileCommands
}

func NewWebhookHandler(reconcile commands.ReconcileCommands) *WebhookHandler {
	return &WebhookHandler{
		reconcile: reconcile,
	}
}

// @Summary Stripe webhook
// @Description Receive payment gateway events and reconcile bookings
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Payload too large", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read request body", nil)
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.reconcile.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		switch {
		case errors.Is(err, errs.ErrAuthenticationFailed):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid webhook signature", nil)
		case errors.Is(err, errs.ErrInconsistent):
			// Non-2xx so the gateway redelivers; the pending guard keeps
			// the retry from double-completing the booking.
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Reconciliation incomplete", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": "true"})
}
