package handlers

import (
	"errors"
	"net/http"

	"doctorsmile/models"
	"doctorsmile/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves deposit confirmation.
type PaymentHandler struct {
	Verifier payment.Verifier
	Logger   *zap.Logger
}

func NewPaymentHandler(verifier payment.Verifier, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Verifier: verifier, Logger: logger}
}

// ConfirmPayment confirms a payment intent and points the payer at the
// booking calendar.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var input struct {
		PaymentIntentID string `json:"paymentIntentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment intent ID"})
		return
	}

	confirmation, err := h.Verifier.Confirm(c.Request.Context(), input.PaymentIntentID)
	if err != nil {
		if errors.Is(err, payment.ErrNotConfirmed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment not confirmed"})
			return
		}
		if _, ok := models.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment intent ID"})
			return
		}
		h.Logger.Error("payment confirmation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"status":             confirmation.Status,
		"redirectToCalendar": true,
		"calendarUrl":        confirmation.RedirectTarget,
	})
}
