package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every endpoint handler for route registration.
type HandlerBundle struct {
	// AI endpoints.
	ProcessSmilePhoto gin.HandlerFunc

	// Funnel service endpoints.
	SubmitApplication gin.HandlerFunc
	AvailableSlots    gin.HandlerFunc
	BookConsultation  gin.HandlerFunc
	ConfirmPayment    gin.HandlerFunc
	SendConfirmation  gin.HandlerFunc

	// Funnel orchestration endpoints.
	StartSession   gin.HandlerFunc
	GetSession     gin.HandlerFunc
	AdvanceSession gin.HandlerFunc
}
