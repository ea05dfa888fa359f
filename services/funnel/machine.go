package funnel

import (
	"context"
	"fmt"
	"time"

	"doctorsmile/models"
	"doctorsmile/services/booking"
	"doctorsmile/services/intake"
	"doctorsmile/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvalidTransitionError reports an event applied at the wrong step. The
// session is left unchanged.
type InvalidTransitionError struct {
	Step  models.FunnelStep
	Event models.FunnelEventType
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("event %q not allowed at step %q", e.Event, e.Step)
}

// Machine drives a session through the funnel: landing → application →
// submitted → payment → payment confirmed → booking → booking confirmed.
// Transitions are strictly sequential; a failed transition returns the session
// unchanged with the error surfaced. The session's step and correlation ids
// are its only persistent context.
type Machine struct {
	Intake   intake.IntakeService
	Payments payment.Verifier
	Bookings booking.BookingService
	Store    SessionStore
	Logger   *zap.Logger
	// Now is injectable for deterministic tests.
	Now func() time.Time
}

// Start creates a fresh session at the landing step.
func (m *Machine) Start(ctx context.Context) (*models.FunnelSession, error) {
	session := models.FunnelSession{
		SessionID: uuid.New().String(),
		Step:      models.StepLanding,
		UpdatedAt: m.now(),
	}
	if err := m.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Get returns the stored session.
func (m *Machine) Get(ctx context.Context, sessionID string) (*models.FunnelSession, error) {
	return m.Store.Get(ctx, sessionID)
}

// Apply runs one transition. On failure the stored session is untouched and
// returned alongside the error so the caller can re-render the current step.
func (m *Machine) Apply(ctx context.Context, sessionID string, event models.FunnelEvent) (*models.FunnelSession, error) {
	session, err := m.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next, err := m.transition(ctx, *session, event)
	if err != nil {
		m.Logger.Warn("funnel transition failed",
			zap.String("sessionId", sessionID),
			zap.String("step", string(session.Step)),
			zap.String("event", string(event.Type)),
			zap.Error(err))
		return session, err
	}

	next.UpdatedAt = m.now()
	if err := m.Store.Save(ctx, next); err != nil {
		return session, err
	}
	return &next, nil
}

func (m *Machine) transition(ctx context.Context, session models.FunnelSession, event models.FunnelEvent) (models.FunnelSession, error) {
	switch event.Type {
	case models.EventReset:
		// Terminal action: clear everything so a new run can begin.
		return models.FunnelSession{
			SessionID: session.SessionID,
			Step:      models.StepLanding,
		}, nil

	case models.EventOpenApplication:
		if session.Step != models.StepLanding {
			return session, &InvalidTransitionError{Step: session.Step, Event: event.Type}
		}
		session.Step = models.StepApplicationOpen
		return session, nil

	case models.EventSubmit:
		if session.Step != models.StepApplicationOpen {
			return session, &InvalidTransitionError{Step: session.Step, Event: event.Type}
		}
		result, err := m.Intake.Submit(ctx, submitInput(event))
		if err != nil {
			return session, err
		}
		session.Step = models.StepSubmitted
		session.ApplicationID = result.ApplicationID
		session.PaymentIntentID = result.PaymentIntentID
		session.ClientSecret = result.ClientSecret
		session.Images = event.Images
		return session, nil

	case models.EventOpenPayment:
		if session.Step != models.StepSubmitted {
			return session, &InvalidTransitionError{Step: session.Step, Event: event.Type}
		}
		session.Step = models.StepPaymentOpen
		return session, nil

	case models.EventConfirmPayment:
		if session.Step != models.StepPaymentOpen {
			return session, &InvalidTransitionError{Step: session.Step, Event: event.Type}
		}
		if _, err := m.Payments.Confirm(ctx, session.PaymentIntentID); err != nil {
			return session, err
		}
		session.Step = models.StepPaymentConfirmed
		return session, nil

	case models.EventOpenBooking:
		if session.Step != models.StepPaymentConfirmed {
			return session, &InvalidTransitionError{Step: session.Step, Event: event.Type}
		}
		session.Step = models.StepBookingOpen
		return session, nil

	case models.EventBook:
		if session.Step != models.StepBookingOpen {
			return session, &InvalidTransitionError{Step: session.Step, Event: event.Type}
		}
		result, err := m.Bookings.Book(ctx, booking.BookInput{
			ApplicationID: session.ApplicationID,
			SelectedSlot:  event.SelectedSlot,
			Timezone:      event.Timezone,
		})
		if err != nil {
			return session, err
		}
		session.Step = models.StepBookingConfirmed
		session.BookingID = result.BookingID
		return session, nil

	default:
		return session, fmt.Errorf("unknown funnel event: %q", event.Type)
	}
}

func submitInput(event models.FunnelEvent) intake.SubmitInput {
	f := event.Fields
	if f == nil {
		f = map[string]string{}
	}
	return intake.SubmitInput{
		Name:     f["name"],
		Email:    f["email"],
		Mobile:   f["mobile"],
		City:     f["city"],
		Goals:    f["goals"],
		Timeline: f["timeline"],
		Budget:   f["budget"],
		Images:   event.Images,
	}
}

func (m *Machine) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}
