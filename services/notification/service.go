package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"doctorsmile/models"

	"go.uber.org/zap"
)

// Per-send ceiling so one stuck SMTP conversation cannot hold up intake.
const sendTimeout = 10 * time.Second

// DefaultDispatcher is the production Dispatcher: it renders both email
// variants and attempts the two sends independently, so one recipient failing
// never blocks the other.
type DefaultDispatcher struct {
	Cfg       Config
	Transport Transport
	Logger    *zap.Logger
}

func NewDefaultDispatcher(cfg Config, logger *zap.Logger) *DefaultDispatcher {
	return &DefaultDispatcher{
		Cfg:       cfg,
		Transport: NewSMTPTransport(cfg),
		Logger:    logger,
	}
}

// NotifyApplication sends the client confirmation and the owner notification
// for a submitted application. Fails closed: an unconfigured transport yields
// an all-false result without error.
func (d *DefaultDispatcher) NotifyApplication(ctx context.Context, app models.Application) models.NotificationResult {
	var result models.NotificationResult

	if !d.Cfg.Complete() {
		d.Logger.Warn("mail transport not configured, skipping application notifications",
			zap.String("applicationId", app.ID))
		return result
	}

	clientHTML, clientText, err := RenderClientConfirmation(app)
	if err != nil {
		d.Logger.Error("failed to render client confirmation", zap.Error(err))
	}
	ownerHTML, ownerText, ownerErr := RenderOwnerNotification(app)
	if ownerErr != nil {
		d.Logger.Error("failed to render owner notification", zap.Error(ownerErr))
	}

	var wg sync.WaitGroup
	if err == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result.ClientSent = d.send(ctx, Message{
				To:      app.Email,
				Subject: "Your DoctorSmile.ca Session is Confirmed!",
				HTML:    clientHTML,
				Text:    clientText,
			})
		}()
	}
	if ownerErr == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result.OwnerSent = d.send(ctx, Message{
				To:      d.Cfg.OwnerEmail,
				Subject: fmt.Sprintf("New Smile Design Application: %s", app.Name),
				HTML:    ownerHTML,
				Text:    ownerText,
			})
		}()
	}
	wg.Wait()

	d.Logger.Info("application notifications dispatched",
		zap.String("applicationId", app.ID),
		zap.Bool("clientSent", result.ClientSent),
		zap.Bool("ownerSent", result.OwnerSent))
	return result
}

// SendBookingConfirmation emails the consultation confirmation to the client.
func (d *DefaultDispatcher) SendBookingConfirmation(ctx context.Context, email, name string, booking models.Booking, displayTime string) bool {
	if !d.Cfg.Complete() {
		d.Logger.Warn("mail transport not configured, skipping booking confirmation",
			zap.String("bookingId", booking.ID))
		return false
	}

	html, text := RenderBookingConfirmation(name, booking, displayTime)
	return d.send(ctx, Message{
		To:      email,
		Subject: "Your DoctorSmile.ca Consultation is Booked",
		HTML:    html,
		Text:    text,
	})
}

// send attempts one delivery with a bounded timeout. Transport failures are
// logged and reported as false, never raised.
func (d *DefaultDispatcher) send(ctx context.Context, msg Message) bool {
	done := make(chan error, 1)
	go func() {
		done <- d.Transport.Send(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			d.Logger.Warn("email send failed", zap.String("to", msg.To), zap.Error(err))
			return false
		}
		return true
	case <-time.After(sendTimeout):
		d.Logger.Warn("email send timed out", zap.String("to", msg.To))
		return false
	case <-ctx.Done():
		d.Logger.Warn("email send canceled", zap.String("to", msg.To), zap.Error(ctx.Err()))
		return false
	}
}
