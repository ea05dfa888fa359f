package notification

import (
	"fmt"

	"github.com/go-gomail/gomail"
)

const senderName = "DoctorSmile"

// SMTPTransport delivers mail through an SMTP account (Gmail app-password
// style).
type SMTPTransport struct {
	cfg Config
}

func NewSMTPTransport(cfg Config) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

// Send composes and delivers a single email with HTML body and plain-text
// alternative.
func (t *SMTPTransport) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", t.cfg.Account, senderName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	d := gomail.NewDialer(t.cfg.SMTPHost, t.cfg.SMTPPort, t.cfg.Account, t.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}
