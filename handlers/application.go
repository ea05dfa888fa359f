package handlers

import (
	"fmt"
	"net/http"

	"doctorsmile/models"
	"doctorsmile/services/intake"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApplicationHandler serves application intake.
type ApplicationHandler struct {
	Intake intake.IntakeService
	Logger *zap.Logger
}

func NewApplicationHandler(svc intake.IntakeService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{Intake: svc, Logger: logger}
}

// SubmitApplication validates and accepts a lead application. Intake success
// is reported even when notification sending fails; the emailSent flag lets
// the caller tell the two apart.
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var input intake.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Intake.Submit(c.Request.Context(), input)
	if err != nil {
		if ve, ok := models.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Missing required field: %s", ve.Field)})
			return
		}
		h.Logger.Error("application submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"applicationId":   result.ApplicationID,
		"paymentIntentId": result.PaymentIntentID,
		"clientSecret":    result.ClientSecret,
		"emailSent":       result.EmailResult.AllSent(),
	})
}
