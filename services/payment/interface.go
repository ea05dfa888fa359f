package payment

import (
	"context"
	"errors"

	"doctorsmile/models"
)

// StatusConfirmed is the client-facing status for a confirmed deposit.
const StatusConfirmed = "payment_confirmed"

// ErrNotConfirmed is returned when the processor does not report the intent as
// succeeded.
var ErrNotConfirmed = errors.New("payment not confirmed")

// Verifier confirms a deposit payment intent. The stub always confirms; the
// Stripe implementation reflects the processor-reported status.
type Verifier interface {
	Confirm(ctx context.Context, paymentIntentID string) (*models.PaymentConfirmation, error)
}

// RedirectTarget points a confirmed payer at the booking calendar for their
// application.
func RedirectTarget(paymentIntentID string) string {
	return "/calendar-booking?applicationId=" + paymentIntentID
}
