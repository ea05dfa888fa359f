package intake

import (
	"context"
	"fmt"
	"time"

	applicationRepo "doctorsmile/database/repository/application"
	"doctorsmile/models"
	"doctorsmile/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultIntakeService is the production IntakeService.
type DefaultIntakeService struct {
	Repo       applicationRepo.ApplicationRepository
	Dispatcher notification.Dispatcher
	Logger     *zap.Logger
	// Now is injectable for deterministic tests.
	Now func() time.Time
}

func NewDefaultIntakeService(repo applicationRepo.ApplicationRepository, dispatcher notification.Dispatcher, logger *zap.Logger) *DefaultIntakeService {
	return &DefaultIntakeService{
		Repo:       repo,
		Dispatcher: dispatcher,
		Logger:     logger,
		Now:        time.Now,
	}
}

// requiredFields is checked in order so the first missing field is the one
// named in the error.
var requiredFields = []struct {
	name  string
	value func(SubmitInput) string
}{
	{"name", func(in SubmitInput) string { return in.Name }},
	{"email", func(in SubmitInput) string { return in.Email }},
	{"mobile", func(in SubmitInput) string { return in.Mobile }},
	{"city", func(in SubmitInput) string { return in.City }},
	{"goals", func(in SubmitInput) string { return in.Goals }},
	{"timeline", func(in SubmitInput) string { return in.Timeline }},
	{"budget", func(in SubmitInput) string { return in.Budget }},
}

// Submit validates the form, synthesizes the payment intent whose id doubles
// as the application id, persists the application, and dispatches both
// notification emails. Validation failure triggers no notification attempt.
func (s *DefaultIntakeService) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	for _, f := range requiredFields {
		if f.value(input) == "" {
			return nil, models.NewValidationError(f.name)
		}
	}

	intentID := "pi_" + uuid.New().String()
	clientSecret := fmt.Sprintf("%s_secret_%s", intentID, uuid.New().String())

	app := models.Application{
		ID:        intentID,
		Name:      input.Name,
		Email:     input.Email,
		Mobile:    input.Mobile,
		City:      input.City,
		Goals:     input.Goals,
		Timeline:  input.Timeline,
		Budget:    input.Budget,
		Images:    input.Images,
		Status:    models.StatusApplicationSubmitted,
		CreatedAt: s.Now(),
	}

	if _, err := s.Repo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to store application: %w", err)
	}

	// Notification failure is reported, not escalated.
	emailResult := s.Dispatcher.NotifyApplication(ctx, app)

	s.Logger.Info("application submitted",
		zap.String("applicationId", app.ID),
		zap.String("city", app.City),
		zap.Bool("emailSent", emailResult.AllSent()))

	return &SubmitResult{
		ApplicationID:   app.ID,
		PaymentIntentID: intentID,
		ClientSecret:    clientSecret,
		EmailResult:     emailResult,
	}, nil
}
