package handlers

import (
	"net/http"

	"doctorsmile/services/slots"

	"github.com/gin-gonic/gin"
)

// SlotsHandler serves the consultation slot catalog.
type SlotsHandler struct {
	Catalog *slots.Catalog
}

func NewSlotsHandler(catalog *slots.Catalog) *SlotsHandler {
	return &SlotsHandler{Catalog: catalog}
}

// AvailableSlots lists the bookable consultation slots.
func (h *SlotsHandler) AvailableSlots(c *gin.Context) {
	list := h.Catalog.List(slots.DefaultParams())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"slots":   list,
	})
}
