package slots

import (
	"time"

	"doctorsmile/models"
	"doctorsmile/utils"
)

// Params bound the generated slot window.
type Params struct {
	HorizonDays        int
	LeadTimeHours      int
	WindowStartHour    int
	WindowEndHour      int
	GranularityMinutes int
	MaxSlots           int
}

// DefaultParams mirror the consultation calendar: two weeks out, weekday
// business hours, 20-minute slots, at least a day's notice, capped at 50.
func DefaultParams() Params {
	return Params{
		HorizonDays:        14,
		LeadTimeHours:      24,
		WindowStartHour:    9,
		WindowEndHour:      17,
		GranularityMinutes: 20,
		MaxSlots:           50,
	}
}

const slotLocation = "Virtual Consultation"

// Catalog generates bookable consultation slots. Pure given a fixed Now; tests
// inject the clock.
type Catalog struct {
	Now func() time.Time
}

func NewCatalog() *Catalog {
	return &Catalog{Now: time.Now}
}

// List enumerates slots from tomorrow through the horizon: weekdays only,
// ticks at the configured granularity within the business window, keeping only
// instants at least the lead time ahead of now. Chronological and stable.
func (c *Catalog) List(p Params) []models.Slot {
	now := c.Now()
	earliest := now.Add(time.Duration(p.LeadTimeHours) * time.Hour)
	startDay := now.AddDate(0, 0, 1)

	var out []models.Slot
	for day := 0; day < p.HorizonDays; day++ {
		date := startDay.AddDate(0, 0, day)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}

		for tick := p.WindowStartHour * 60; tick < p.WindowEndHour*60; tick += p.GranularityMinutes {
			slotTime := time.Date(date.Year(), date.Month(), date.Day(), tick/60, tick%60, 0, 0, date.Location())
			if !slotTime.After(earliest) {
				continue
			}

			out = append(out, models.Slot{
				Datetime:    slotTime,
				DisplayTime: utils.FormatDisplayTime(slotTime),
				Location:    slotLocation,
			})
			if len(out) >= p.MaxSlots {
				return out
			}
		}
	}
	return out
}
