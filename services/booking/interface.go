package booking

import (
	"context"

	"doctorsmile/models"
)

// BookInput is a slot selection tied to an application id.
type BookInput struct {
	ApplicationID string `json:"applicationId"`
	SelectedSlot  string `json:"selectedSlot"`
	Timezone      string `json:"timezone"`
}

// BookingService confirms consultation bookings and dispatches their
// confirmations.
type BookingService interface {
	Book(ctx context.Context, input BookInput) (*models.BookingConfirmationResponse, error)
	SendConfirmation(ctx context.Context, bookingID string) (*models.ConfirmationReceipt, error)
}
