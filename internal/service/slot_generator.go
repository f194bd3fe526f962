package service

import (
	"time"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
)

const defaultGranularityMinutes = 15

// SlotGenerator enumerates raw start times inside opening hours.
type SlotGenerator struct {
	granularity int
}

// NewSlotGenerator builds a generator stepping by granularity minutes.
func NewSlotGenerator(granularity int) *SlotGenerator {
	if granularity <= 0 {
		granularity = defaultGranularityMinutes
	}
	return &SlotGenerator{granularity: granularity}
}

// Generate returns ascending start times on date for a job of totalMinutes.
// Every start satisfies open <= start and start+totalMinutes <= close, and no
// job window touches the lunch blackout. Closed days yield nil.
func (g *SlotGenerator) Generate(calendar *BusinessCalendar, date time.Time, totalMinutes int) []models.ClockTime {
	day, ok := calendar.HoursOn(date)
	if !ok || totalMinutes <= 0 || totalMinutes > day.Span() {
		return nil
	}
	var starts []models.ClockTime
	for start := day.Open; start.Add(totalMinutes) <= day.Close; start = start.Add(g.granularity) {
		if day.HasLunch() && overlaps(start, start.Add(totalMinutes), *day.LunchStart, *day.LunchEnd) {
			continue
		}
		starts = append(starts, start)
	}
	return starts
}

// overlaps is the half-open interval test for [aStart,aEnd) and [bStart,bEnd).
func overlaps(aStart, aEnd, bStart, bEnd models.ClockTime) bool {
	return aStart < bEnd && bStart < aEnd
}
