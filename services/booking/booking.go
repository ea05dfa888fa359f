package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	applicationRepo "doctorsmile/database/repository/application"
	bookingRepo "doctorsmile/database/repository/booking"
	"doctorsmile/models"
	"doctorsmile/services/notification"
	"doctorsmile/services/tasks"
	"doctorsmile/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	consultationDuration = "20 minutes"
	consultationType     = "Virtual Consultation"
	reminderLeadTime     = 24 * time.Hour
)

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	Applications applicationRepo.ApplicationRepository
	Dispatcher   notification.Dispatcher
	// ReminderClient schedules consultation reminders; nil disables them.
	ReminderClient *asynq.Client
	MeetingLink    string
	PhoneBackup    string
	Logger         *zap.Logger
	// Now is injectable for deterministic tests.
	Now func() time.Time
}

// Book validates the selection, fixes the 20-minute virtual consultation,
// persists the booking, and returns the formatted confirmation. No conflict
// detection: two sessions can book the same slot.
func (s *DefaultBookingService) Book(ctx context.Context, input BookInput) (*models.BookingConfirmationResponse, error) {
	if input.ApplicationID == "" {
		return nil, models.NewValidationError("applicationId")
	}
	if input.SelectedSlot == "" {
		return nil, models.NewValidationError("selectedSlot")
	}
	if input.Timezone == "" {
		return nil, models.NewValidationError("timezone")
	}

	slotTime, err := time.Parse(time.RFC3339, input.SelectedSlot)
	if err != nil {
		return nil, models.NewValidationError("selectedSlot")
	}
	loc, err := time.LoadLocation(input.Timezone)
	if err != nil {
		return nil, models.NewValidationError("timezone")
	}

	booking := models.Booking{
		ID:            "booking_" + uuid.New().String(),
		ApplicationID: input.ApplicationID,
		SelectedSlot:  slotTime,
		Timezone:      input.Timezone,
		Status:        "confirmed",
		CreatedAt:     s.Now(),
	}
	if _, err := s.Repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	// The application id is a foreign reference only; a missing record is not
	// a booking failure.
	if err := s.Applications.SetStatus(ctx, input.ApplicationID, models.StatusConsultationBooked); err != nil && !errors.Is(err, models.ErrNotFound) {
		s.Logger.Warn("failed to update application status",
			zap.String("applicationId", input.ApplicationID), zap.Error(err))
	}

	displayTime := utils.FormatDisplayTime(slotTime.In(loc))
	s.scheduleReminder(ctx, booking, displayTime)

	s.Logger.Info("consultation booked",
		zap.String("bookingId", booking.ID),
		zap.String("applicationId", booking.ApplicationID),
		zap.Time("slot", slotTime))

	return &models.BookingConfirmationResponse{
		BookingID: booking.ID,
		Confirmation: models.BookingConfirmation{
			DateTime:    displayTime,
			Duration:    consultationDuration,
			Type:        consultationType,
			MeetingLink: s.MeetingLink,
			PhoneBackup: s.PhoneBackup,
		},
		NextSteps: []string{
			"Check your email for confirmation and meeting link",
			"Prepare photos of your current smile",
			"List your smile goals and concerns",
			"Ensure good lighting for the video call",
		},
	}, nil
}

// SendConfirmation dispatches the booking confirmation email (SMS delivery is
// mocked) and reports each channel independently.
func (s *DefaultBookingService) SendConfirmation(ctx context.Context, bookingID string) (*models.ConfirmationReceipt, error) {
	if bookingID == "" {
		return nil, models.NewValidationError("bookingId")
	}

	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	email, name := s.recipient(ctx, booking.ApplicationID)
	emailSent := false
	if email != "" {
		loc, locErr := time.LoadLocation(booking.Timezone)
		if locErr != nil {
			loc = time.UTC
		}
		displayTime := utils.FormatDisplayTime(booking.SelectedSlot.In(loc))
		emailSent = s.Dispatcher.SendBookingConfirmation(ctx, email, name, *booking, displayTime)
	} else {
		s.Logger.Warn("no recipient on record for booking confirmation",
			zap.String("bookingId", bookingID))
	}

	return &models.ConfirmationReceipt{
		EmailSent:          emailSent,
		SMSSent:            true, // SMS delivery is synthesized
		ConfirmationNumber: booking.ID,
		SentAt:             s.Now(),
	}, nil
}

func (s *DefaultBookingService) recipient(ctx context.Context, applicationID string) (email, name string) {
	app, err := s.Applications.GetByID(ctx, applicationID)
	if err != nil {
		return "", ""
	}
	return app.Email, app.Name
}

// scheduleReminder enqueues a reminder email a day ahead of the slot.
func (s *DefaultBookingService) scheduleReminder(ctx context.Context, booking models.Booking, displayTime string) {
	if s.ReminderClient == nil {
		return
	}
	fireAt := booking.SelectedSlot.Add(-reminderLeadTime)
	if !fireAt.After(s.Now()) {
		return
	}

	email, name := s.recipient(ctx, booking.ApplicationID)
	if email == "" {
		return
	}

	payload := models.ReminderPayload{
		BookingID:     booking.ID,
		ApplicationID: booking.ApplicationID,
		Email:         email,
		Name:          name,
		FireDate:      fireAt.Format(time.RFC3339),
		DisplayTime:   displayTime,
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		s.Logger.Warn("failed to build reminder task", zap.Error(err))
		return
	}
	if _, err := s.ReminderClient.Enqueue(task, opts...); err != nil {
		s.Logger.Warn("failed to enqueue reminder", zap.String("bookingId", booking.ID), zap.Error(err))
	}
}
