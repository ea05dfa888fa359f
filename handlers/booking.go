package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"doctorsmile/models"
	"doctorsmile/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves consultation booking and confirmation dispatch.
type BookingHandler struct {
	Bookings booking.BookingService
	Logger   *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Bookings: svc, Logger: logger}
}

// BookConsultation confirms a slot selection against an application.
func (h *BookingHandler) BookConsultation(c *gin.Context) {
	var input booking.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Bookings.Book(c.Request.Context(), input)
	if err != nil {
		if ve, ok := models.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Missing required field: %s", ve.Field)})
			return
		}
		h.Logger.Error("booking failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"bookingId":    result.BookingID,
		"confirmation": result.Confirmation,
		"nextSteps":    result.NextSteps,
	})
}

// SendConfirmation dispatches the booking confirmation (email plus mocked
// SMS).
func (h *BookingHandler) SendConfirmation(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	receipt, err := h.Bookings.SendConfirmation(c.Request.Context(), input.BookingID)
	if err != nil {
		if ve, ok := models.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Missing required field: %s", ve.Field)})
			return
		}
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.Logger.Error("confirmation dispatch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"confirmation": receipt,
		"message":      "Confirmation sent via email and SMS",
	})
}
