package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"doctorsmile/models"
	"doctorsmile/services/funnel"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FunnelHandler exposes the orchestration state machine so a flow can be
// started, advanced, inspected, and resumed.
type FunnelHandler struct {
	Machine *funnel.Machine
	Logger  *zap.Logger
}

func NewFunnelHandler(machine *funnel.Machine, logger *zap.Logger) *FunnelHandler {
	return &FunnelHandler{Machine: machine, Logger: logger}
}

// StartSession opens a fresh funnel session at the landing step.
func (h *FunnelHandler) StartSession(c *gin.Context) {
	session, err := h.Machine.Start(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to start funnel session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetSession returns the stored session.
func (h *FunnelHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	session, err := h.Machine.Get(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "funnel session not found or expired"})
			return
		}
		h.Logger.Error("failed to load funnel session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// AdvanceSession applies one transition event. A failed transition surfaces a
// human-readable error and returns the session at its current step.
func (h *FunnelHandler) AdvanceSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var event models.FunnelEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Machine.Apply(c.Request.Context(), sessionID, event)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "funnel session not found or expired"})
			return
		}

		var invalid *funnel.InvalidTransitionError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusConflict, gin.H{"error": invalid.Error(), "session": session})
			return
		}
		if ve, ok := models.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   fmt.Sprintf("Missing required field: %s", ve.Field),
				"session": session,
			})
			return
		}

		h.Logger.Error("funnel advance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "session": session})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}
