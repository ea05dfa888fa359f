package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"doctorsmile/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTransport records sent messages and fails selected recipients.
type fakeTransport struct {
	mu     sync.Mutex
	sent   []Message
	failTo map[string]bool
}

func (f *fakeTransport) Send(msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.failTo[msg.To] {
		return errors.New("smtp: connection refused")
	}
	return nil
}

func (f *fakeTransport) messages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.sent...)
}

func testConfig() Config {
	return Config{
		Account:    "clinic@example.com",
		Password:   "app-password",
		SMTPHost:   "smtp.example.com",
		SMTPPort:   587,
		OwnerEmail: "owner@example.com",
	}
}

func testApplication() models.Application {
	return models.Application{
		ID:        "pi_test",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Mobile:    "555-0100",
		City:      "london",
		Goals:     "whiter teeth",
		Timeline:  "asap",
		Budget:    "30-35k",
		Status:    models.StatusApplicationSubmitted,
		CreatedAt: time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestNotifyApplication_SendsBothEmails(t *testing.T) {
	transport := &fakeTransport{}
	d := &DefaultDispatcher{Cfg: testConfig(), Transport: transport, Logger: zap.NewNop()}

	result := d.NotifyApplication(context.Background(), testApplication())

	assert.True(t, result.ClientSent)
	assert.True(t, result.OwnerSent)
	assert.True(t, result.AllSent())

	msgs := transport.messages()
	require.Len(t, msgs, 2)

	byRecipient := map[string]Message{}
	for _, m := range msgs {
		byRecipient[m.To] = m
	}
	client, ok := byRecipient["jane@example.com"]
	require.True(t, ok, "client email missing")
	assert.Equal(t, "Your DoctorSmile.ca Session is Confirmed!", client.Subject)
	assert.Contains(t, client.HTML, "Thank you Jane Doe!")
	assert.Contains(t, client.Text, "Thank you Jane Doe!")

	owner, ok := byRecipient["owner@example.com"]
	require.True(t, ok, "owner email missing")
	assert.Equal(t, "New Smile Design Application: Jane Doe", owner.Subject)
	assert.Contains(t, owner.HTML, "pi_test")
	assert.Contains(t, owner.Text, "whiter teeth")
}

func TestNotifyApplication_FailuresAreIndependent(t *testing.T) {
	transport := &fakeTransport{failTo: map[string]bool{"owner@example.com": true}}
	d := &DefaultDispatcher{Cfg: testConfig(), Transport: transport, Logger: zap.NewNop()}

	result := d.NotifyApplication(context.Background(), testApplication())

	assert.True(t, result.ClientSent)
	assert.False(t, result.OwnerSent)
	assert.False(t, result.AllSent())
	assert.Len(t, transport.messages(), 2, "both sends must still be attempted")
}

func TestNotifyApplication_IncompleteConfigFailsClosed(t *testing.T) {
	transport := &fakeTransport{}
	d := &DefaultDispatcher{Cfg: Config{}, Transport: transport, Logger: zap.NewNop()}

	result := d.NotifyApplication(context.Background(), testApplication())

	assert.False(t, result.ClientSent)
	assert.False(t, result.OwnerSent)
	assert.Empty(t, transport.messages(), "unconfigured transport must never be invoked")
}

func TestNotifyApplication_ImagePairConditional(t *testing.T) {
	transport := &fakeTransport{}
	d := &DefaultDispatcher{Cfg: testConfig(), Transport: transport, Logger: zap.NewNop()}

	app := testApplication()
	app.Images = &models.ImagePair{
		Before: "data:image/png;base64,before",
		After:  "data:image/png;base64,after",
	}
	d.NotifyApplication(context.Background(), app)

	for _, m := range transport.messages() {
		// html/template must not sanitize the data URIs away.
		assert.Contains(t, m.HTML, "data:image/png;base64,before")
		assert.Contains(t, m.HTML, "data:image/png;base64,after")
		assert.NotContains(t, m.HTML, "ZgotmplZ")
	}
}

func TestNotifyApplication_NoImagesOmitsPreview(t *testing.T) {
	transport := &fakeTransport{}
	d := &DefaultDispatcher{Cfg: testConfig(), Transport: transport, Logger: zap.NewNop()}

	d.NotifyApplication(context.Background(), testApplication())

	for _, m := range transport.messages() {
		if m.To == "owner@example.com" {
			assert.Contains(t, m.HTML, "No photos were uploaded by the applicant.")
		}
		assert.NotContains(t, m.HTML, "image-comparison\">")
	}
}

func TestSendBookingConfirmation(t *testing.T) {
	transport := &fakeTransport{}
	d := &DefaultDispatcher{Cfg: testConfig(), Transport: transport, Logger: zap.NewNop()}

	booking := models.Booking{ID: "booking_abc", Timezone: "America/Toronto"}
	ok := d.SendBookingConfirmation(context.Background(), "jane@example.com", "Jane Doe", booking, "Monday, March 2, 2026 at 2:00 PM")

	assert.True(t, ok)
	msgs := transport.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "jane@example.com", msgs[0].To)
	assert.Equal(t, "Your DoctorSmile.ca Consultation is Booked", msgs[0].Subject)
	assert.Contains(t, msgs[0].Text, "booking_abc")
	assert.Contains(t, msgs[0].Text, "Monday, March 2, 2026 at 2:00 PM")
	assert.Contains(t, msgs[0].HTML, "America/Toronto")
}

func TestSendBookingConfirmation_Unconfigured(t *testing.T) {
	transport := &fakeTransport{}
	d := &DefaultDispatcher{Cfg: Config{}, Transport: transport, Logger: zap.NewNop()}

	ok := d.SendBookingConfirmation(context.Background(), "jane@example.com", "Jane Doe", models.Booking{ID: "booking_abc"}, "")
	assert.False(t, ok)
	assert.Empty(t, transport.messages())
}
