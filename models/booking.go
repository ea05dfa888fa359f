package models

import "time"

// Booking is a confirmed reservation of a slot against an application.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	ApplicationID string    `bson:"applicationId" json:"applicationId"`
	SelectedSlot  time.Time `bson:"selectedSlot" json:"selectedSlot"`
	Timezone      string    `bson:"timezone" json:"timezone"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingConfirmation carries the human-readable consultation details returned
// to the client after a successful booking.
type BookingConfirmation struct {
	DateTime    string `json:"dateTime"`
	Duration    string `json:"duration"`
	Type        string `json:"type"`
	MeetingLink string `json:"meetingLink"`
	PhoneBackup string `json:"phoneBackup"`
}

// BookingConfirmationResponse is the full response for a confirmed booking.
type BookingConfirmationResponse struct {
	BookingID    string              `json:"bookingId"`
	Confirmation BookingConfirmation `json:"confirmation"`
	NextSteps    []string            `json:"nextSteps"`
}

// ConfirmationReceipt reports the outcome of the post-booking confirmation
// dispatch (email plus mocked SMS).
type ConfirmationReceipt struct {
	EmailSent          bool      `json:"emailSent"`
	SMSSent            bool      `json:"smsSent"`
	ConfirmationNumber string    `json:"confirmationNumber"`
	SentAt             time.Time `json:"sentAt"`
}
