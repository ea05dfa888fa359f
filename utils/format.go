package utils

import "time"

// FormatDisplayTime renders an instant the way slots and booking
// confirmations present it to people.
func FormatDisplayTime(t time.Time) string {
	return t.Format("Monday, January 2, 2006 at 3:04 PM")
}
