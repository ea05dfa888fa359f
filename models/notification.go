package models

// NotificationResult reports each recipient's send outcome independently.
// {ClientSent: false, OwnerSent: true} is a valid outcome, not an error.
type NotificationResult struct {
	ClientSent bool `json:"clientSent"`
	OwnerSent  bool `json:"ownerSent"`
}

// AllSent reports whether both recipients were reached.
func (r NotificationResult) AllSent() bool {
	return r.ClientSent && r.OwnerSent
}

// ReminderPayload is the asynq task payload for consultation reminders.
type ReminderPayload struct {
	BookingID     string `json:"bookingId"`
	ApplicationID string `json:"applicationId"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	FireDate      string `json:"fireDate"`
	DisplayTime   string `json:"displayTime"`
}
