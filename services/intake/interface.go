package intake

import (
	"context"

	"doctorsmile/models"
)

// SubmitInput carries the application form fields.
type SubmitInput struct {
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Mobile   string            `json:"mobile"`
	City     string            `json:"city"`
	Goals    string            `json:"goals"`
	Timeline string            `json:"timeline"`
	Budget   string            `json:"budget"`
	Images   *models.ImagePair `json:"beforeAfterImages,omitempty"`
}

// SubmitResult reports the intake outcome. EmailResult is independent of
// submission success: a failed notification never fails the submit.
type SubmitResult struct {
	ApplicationID   string                    `json:"applicationId"`
	PaymentIntentID string                    `json:"paymentIntentId"`
	ClientSecret    string                    `json:"clientSecret"`
	EmailResult     models.NotificationResult `json:"emailResult"`
}

// IntakeService validates and accepts lead applications.
type IntakeService interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
}
