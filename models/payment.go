package models

// PaymentIntent is an opaque handle for the consultation deposit. The intent id
// doubles as the application's correlation id for the rest of the funnel.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
}

// PaymentConfirmation is the verifier's view of an intent after confirmation.
type PaymentConfirmation struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Status          string `json:"status"`
	RedirectTarget  string `json:"redirectTarget"`
}
