package routes

import (
	"net/http"
	"time"

	"doctorsmile/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAIRoutes registers the photo enhancement endpoint.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.POST("/process-smile-photo", hb.ProcessSmilePhoto)
	}
}

// RegisterFunnelRoutes registers the funnel service and orchestration
// endpoints.
func RegisterFunnelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/funnel")
	{
		api.POST("/submit-application", hb.SubmitApplication)
		api.GET("/available-slots", hb.AvailableSlots)
		api.POST("/book-consultation", hb.BookConsultation)
		api.POST("/confirm-payment", hb.ConfirmPayment)
		api.POST("/send-confirmation", hb.SendConfirmation)

		api.POST("/session", hb.StartSession)
		api.GET("/session/:sessionID", hb.GetSession)
		api.POST("/session/:sessionID/advance", hb.AdvanceSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm DoctorSmile"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAIRoutes(r, hb)
	RegisterFunnelRoutes(r, hb)
	RegisterHealthRoute(r)
}
