// File: doctorsmile/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctorsmile/config"
	"doctorsmile/cron"
	"doctorsmile/database"
	applicationRepo "doctorsmile/database/repository/application"
	bookingRepo "doctorsmile/database/repository/booking"
	"doctorsmile/handlers"
	"doctorsmile/middleware"
	"doctorsmile/routes"
	bookingSvc "doctorsmile/services/booking"
	"doctorsmile/services/enhance"
	"doctorsmile/services/funnel"
	"doctorsmile/services/intake"
	"doctorsmile/services/notification"
	"doctorsmile/services/payment"
	"doctorsmile/services/slots"
	"doctorsmile/services/storage"
	"doctorsmile/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories: Mongo when configured, in-memory otherwise.
	var appRepo applicationRepo.ApplicationRepository
	var bkRepo bookingRepo.BookingRepository
	if config.AppConfig.DatabaseURL != "" {
		database.InitDB()
		appRepo = applicationRepo.NewMongoApplicationRepo()
		bkRepo = bookingRepo.NewMongoBookingRepo()
	} else {
		logger.Sugar().Warn("main: no DATABASE_URL set, applications and bookings are held in memory")
		appRepo = applicationRepo.NewMemoryApplicationRepo()
		bkRepo = bookingRepo.NewMemoryBookingRepo()
	}

	// Notification dispatcher.
	mailCfg := notification.Config{
		Account:    config.AppConfig.MailAccount,
		Password:   config.AppConfig.MailPassword,
		SMTPHost:   config.AppConfig.SMTPHost,
		SMTPPort:   config.AppConfig.SMTPPort,
		OwnerEmail: config.AppConfig.OwnerEmail,
	}
	if !mailCfg.Complete() {
		logger.Sugar().Warn("main: mail configuration incomplete, notification sends will be reported as failed")
	}
	dispatcher := notification.NewDefaultDispatcher(mailCfg, logger)

	// Photo enhancement: remote Gemini collaborator with local fallback.
	var remote enhance.Enhancer
	if config.AppConfig.GeminiAPIKey != "" {
		remote = enhance.NewGeminiEnhancer(config.AppConfig.GeminiAPIKey)
	}
	enhanceService := enhance.NewService(remote, logger)

	// Photo storage collaborator, optional.
	var storageService storage.StorageService
	if config.AppConfig.CloudinaryCloudName != "" {
		cld, err := storage.NewCloudinaryStorageService(
			config.AppConfig.CloudinaryCloudName,
			config.AppConfig.CloudinaryAPIKey,
			config.AppConfig.CloudinaryAPISecret,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
		}
		storageService = cld
	}

	// Payment verification: Stripe when configured, always-confirm stub
	// otherwise.
	var verifier payment.Verifier
	if config.AppConfig.StripeKey != "" {
		stripe.Key = config.AppConfig.StripeKey
		verifier = &payment.StripeVerifier{Logger: logger}
	} else {
		logger.Sugar().Warn("main: no STRIPE_KEY set, payment confirmation is stubbed")
		verifier = &payment.StubVerifier{Logger: logger}
	}

	// Reminder queue and funnel session store need Redis.
	var reminderClient *asynq.Client
	var sessionStore funnel.SessionStore
	if config.AppConfig.RedisAddr != "" {
		reminderClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		})
		defer reminderClient.Close()
		cron.InitReminderWorker(dispatcher)

		sessionStore = funnel.NewRedisSessionStore(utils.GetFunnelCacheClient(), 30*time.Minute)
	} else {
		sessionStore = funnel.NewMemorySessionStore()
	}

	// Services.
	intakeService := intake.NewDefaultIntakeService(appRepo, dispatcher, logger)
	slotCatalog := slots.NewCatalog()
	bookingService := &bookingSvc.DefaultBookingService{
		Repo:           bkRepo,
		Applications:   appRepo,
		Dispatcher:     dispatcher,
		ReminderClient: reminderClient,
		MeetingLink:    config.AppConfig.MeetingLink,
		PhoneBackup:    config.AppConfig.PhoneBackup,
		Logger:         logger,
		Now:            time.Now,
	}
	funnelMachine := &funnel.Machine{
		Intake:   intakeService,
		Payments: verifier,
		Bookings: bookingService,
		Store:    sessionStore,
		Logger:   logger,
	}

	// Handlers.
	enhanceHandler := handlers.NewEnhanceHandler(enhanceService, storageService, logger)
	applicationHandler := handlers.NewApplicationHandler(intakeService, logger)
	slotsHandler := handlers.NewSlotsHandler(slotCatalog)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	paymentHandler := handlers.NewPaymentHandler(verifier, logger)
	funnelHandler := handlers.NewFunnelHandler(funnelMachine, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ProcessSmilePhoto: enhanceHandler.ProcessSmilePhoto,

		SubmitApplication: applicationHandler.SubmitApplication,
		AvailableSlots:    slotsHandler.AvailableSlots,
		BookConsultation:  bookingHandler.BookConsultation,
		ConfirmPayment:    paymentHandler.ConfirmPayment,
		SendConfirmation:  bookingHandler.SendConfirmation,

		StartSession:   funnelHandler.StartSession,
		GetSession:     funnelHandler.GetSession,
		AdvanceSession: funnelHandler.AdvanceSession,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
