package service

import (
	"github.com/noah-isme/autoservice-booking-api/internal/models"
)

const defaultBufferMinutes = 15

// ConflictChecker rejects candidates that crowd existing reservations.
//
// Both the candidate and every reservation are widened by the buffer before the
// overlap test, so two adjacent bookings end up separated by twice the buffer.
// Existing scheduling outcomes depend on that margin; keep it symmetric.
type ConflictChecker struct {
	buffer int
}

// NewConflictChecker builds a checker with the given buffer in minutes.
func NewConflictChecker(buffer int) *ConflictChecker {
	if buffer < 0 {
		buffer = defaultBufferMinutes
	}
	return &ConflictChecker{buffer: buffer}
}

// Buffer returns the configured buffer in minutes.
func (c *ConflictChecker) Buffer() int { return c.buffer }

// Conflicts reports whether [start,end) collides with any reservation once
// both sides are buffered.
func (c *ConflictChecker) Conflicts(start, end models.ClockTime, reservations []models.Reservation) bool {
	candStart, candEnd := start.Add(-c.buffer), end.Add(c.buffer)
	for _, res := range reservations {
		if res.Status == models.ReservationStatusCancelled {
			continue
		}
		if overlaps(candStart, candEnd, res.StartTime.Add(-c.buffer), res.EndTime.Add(c.buffer)) {
			return true
		}
	}
	return false
}

// Filter keeps the starts whose job window of totalMinutes is conflict free.
func (c *ConflictChecker) Filter(starts []models.ClockTime, totalMinutes int, reservations []models.Reservation) []models.ClockTime {
	if len(reservations) == 0 {
		return starts
	}
	out := make([]models.ClockTime, 0, len(starts))
	for _, start := range starts {
		if !c.Conflicts(start, start.Add(totalMinutes), reservations) {
			out = append(out, start)
		}
	}
	return out
}
