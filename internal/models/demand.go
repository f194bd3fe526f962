package models

import "time"

// HourSlot addresses one weekday/hour cell.
type HourSlot struct {
	Weekday Weekday `json:"weekday"`
	Hour    int     `json:"hour"`
}

// DemandCell aggregates historical bookings for one weekday/hour.
type DemandCell struct {
	Weekday     Weekday `json:"weekday"`
	Hour        int     `json:"hour"`
	Count       int     `json:"count"`
	AvgValue    float64 `json:"avgValue"`
	SuccessRate float64 `json:"successRate"`
}

// DemandStats is the cached demand snapshot over a rolling window.
type DemandStats struct {
	WindowStart time.Time    `json:"windowStart"`
	Cells       []DemandCell `json:"cells"`
	PeakSlots   []HourSlot   `json:"peakSlots"`
	QuietSlots  []HourSlot   `json:"quietSlots"`
}

// Lookup returns the cell for weekday/hour.
func (s *DemandStats) Lookup(weekday Weekday, hour int) (DemandCell, bool) {
	if s == nil {
		return DemandCell{}, false
	}
	for _, cell := range s.Cells {
		if cell.Weekday == weekday && cell.Hour == hour {
			return cell, true
		}
	}
	return DemandCell{}, false
}
