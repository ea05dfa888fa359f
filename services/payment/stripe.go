package payment

import (
	"context"
	"fmt"

	"doctorsmile/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeVerifier looks up the real payment intent and reflects its
// processor-reported status. Selected whenever a Stripe key is configured.
type StripeVerifier struct {
	Logger *zap.Logger
}

func (v *StripeVerifier) Confirm(ctx context.Context, paymentIntentID string) (*models.PaymentConfirmation, error) {
	if paymentIntentID == "" {
		return nil, models.NewValidationError("paymentIntentId")
	}

	intent, err := paymentintent.Get(paymentIntentID, &stripe.PaymentIntentParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	v.Logger.Info("stripe payment intent retrieved",
		zap.String("paymentIntentId", paymentIntentID),
		zap.String("status", string(intent.Status)))

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, ErrNotConfirmed
	}

	return &models.PaymentConfirmation{
		PaymentIntentID: paymentIntentID,
		Status:          StatusConfirmed,
		RedirectTarget:  RedirectTarget(paymentIntentID),
	}, nil
}
