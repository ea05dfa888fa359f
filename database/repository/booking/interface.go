package bookingRepo

import (
	"context"

	"doctorsmile/models"
)

// BookingRepository persists confirmed bookings. No update or cancellation
// path is defined.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}
