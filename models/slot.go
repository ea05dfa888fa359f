package models

import "time"

// Slot is a discrete bookable consultation window. Slots are generated, never
// persisted.
type Slot struct {
	Datetime    time.Time `json:"datetime"`
	DisplayTime string    `json:"displayTime"`
	Location    string    `json:"location"`
}
