package notification

import (
	"context"

	"doctorsmile/models"
)

// Config is the mail-account identity, credential, and recipients, constructed
// once at process start. An incomplete config degrades every send to a
// reported failure.
type Config struct {
	Account    string
	Password   string
	SMTPHost   string
	SMTPPort   int
	OwnerEmail string
}

// Complete reports whether the transport has everything it needs to send.
func (c Config) Complete() bool {
	return c.Account != "" && c.Password != "" && c.OwnerEmail != ""
}

// Dispatcher sends the funnel's transactional emails. Send failures are
// isolated per recipient and never escalate to the calling operation.
type Dispatcher interface {
	NotifyApplication(ctx context.Context, app models.Application) models.NotificationResult
	SendBookingConfirmation(ctx context.Context, email, name string, booking models.Booking, displayTime string) bool
}

// Message is a rendered email with a plain-text fallback alongside the HTML
// body.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Transport delivers a rendered message.
type Transport interface {
	Send(msg Message) error
}
