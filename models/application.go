package models

import "time"

// ApplicationStatus tracks where an application sits in the funnel.
type ApplicationStatus string

const (
	StatusApplicationSubmitted ApplicationStatus = "application_submitted"
	StatusDepositPaid          ApplicationStatus = "deposit_paid"
	StatusConsultationBooked   ApplicationStatus = "consultation_booked"
)

// Application is a prospective client's submitted lead record. Immutable after
// intake except for the status field, which the booking flow advances.
type Application struct {
	ID        string            `bson:"id" json:"id"`
	Name      string            `bson:"name" json:"name"`
	Email     string            `bson:"email" json:"email"`
	Mobile    string            `bson:"mobile" json:"mobile"`
	City      string            `bson:"city" json:"city"`
	Goals     string            `bson:"goals" json:"goals"`
	Timeline  string            `bson:"timeline" json:"timeline"`
	Budget    string            `bson:"budget" json:"budget"`
	Images    *ImagePair        `bson:"images,omitempty" json:"images,omitempty"`
	Status    ApplicationStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}

// ImagePair holds the before/after smile preview. References are data URIs or
// hosted URLs depending on whether a storage backend is configured.
type ImagePair struct {
	Before string `bson:"before" json:"before"`
	After  string `bson:"after" json:"after"`
}

// HasBoth reports whether the pair carries both references.
func (p *ImagePair) HasBoth() bool {
	return p != nil && p.Before != "" && p.After != ""
}
