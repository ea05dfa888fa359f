package payment

import (
	"context"

	"doctorsmile/models"

	"go.uber.org/zap"
)

// StubVerifier always confirms. It stands in for the processor when no Stripe
// key is configured; the interface contract is the part worth preserving.
type StubVerifier struct {
	Logger *zap.Logger
}

func (v *StubVerifier) Confirm(ctx context.Context, paymentIntentID string) (*models.PaymentConfirmation, error) {
	if paymentIntentID == "" {
		return nil, models.NewValidationError("paymentIntentId")
	}

	v.Logger.Info("stub payment confirmation", zap.String("paymentIntentId", paymentIntentID))
	return &models.PaymentConfirmation{
		PaymentIntentID: paymentIntentID,
		Status:          StatusConfirmed,
		RedirectTarget:  RedirectTarget(paymentIntentID),
	}, nil
}
