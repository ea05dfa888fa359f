package models

import "time"

// FunnelStep identifies where a session sits in the sequential funnel.
type FunnelStep string

const (
	StepLanding          FunnelStep = "landing"
	StepApplicationOpen  FunnelStep = "application_open"
	StepSubmitted        FunnelStep = "submitted"
	StepPaymentOpen      FunnelStep = "payment_open"
	StepPaymentConfirmed FunnelStep = "payment_confirmed"
	StepBookingOpen      FunnelStep = "booking_open"
	StepBookingConfirmed FunnelStep = "booking_confirmed"
)

// FunnelEventType names the transitions a session can attempt.
type FunnelEventType string

const (
	EventOpenApplication FunnelEventType = "open_application"
	EventSubmit          FunnelEventType = "submit"
	EventOpenPayment     FunnelEventType = "open_payment"
	EventConfirmPayment  FunnelEventType = "confirm_payment"
	EventOpenBooking     FunnelEventType = "open_booking"
	EventBook            FunnelEventType = "book"
	EventReset           FunnelEventType = "reset"
)

// FunnelEvent is the message that drives a session transition. Only the fields
// relevant to the event type are set.
type FunnelEvent struct {
	Type         FunnelEventType   `json:"type"`
	Fields       map[string]string `json:"fields,omitempty"`
	Images       *ImagePair        `json:"images,omitempty"`
	SelectedSlot string            `json:"selectedSlot,omitempty"`
	Timezone     string            `json:"timezone,omitempty"`
}

// FunnelSession holds the serializable context between funnel steps: the
// current step plus the correlation ids. Everything else is re-fetched per
// step.
type FunnelSession struct {
	SessionID       string     `json:"sessionId"`
	Step            FunnelStep `json:"step"`
	ApplicationID   string     `json:"applicationId,omitempty"`
	PaymentIntentID string     `json:"paymentIntentId,omitempty"`
	ClientSecret    string     `json:"clientSecret,omitempty"`
	BookingID       string     `json:"bookingId,omitempty"`
	Images          *ImagePair `json:"images,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
