package models

import "fmt"

// BusinessDay holds the opening hours for one weekday.
type BusinessDay struct {
	Weekday    Weekday    `json:"weekday"`
	Open       ClockTime  `json:"open"`
	Close      ClockTime  `json:"close"`
	LunchStart *ClockTime `json:"lunchStart,omitempty"`
	LunchEnd   *ClockTime `json:"lunchEnd,omitempty"`
}

// HasLunch reports whether a lunch blackout is configured.
func (d BusinessDay) HasLunch() bool {
	return d.LunchStart != nil && d.LunchEnd != nil
}

// Span returns the minutes between open and close.
func (d BusinessDay) Span() int {
	return int(d.Close - d.Open)
}

// Validate enforces open < lunchStart < lunchEnd < close.
func (d BusinessDay) Validate() error {
	if !d.Weekday.Valid() {
		return fmt.Errorf("invalid weekday %d", d.Weekday)
	}
	if d.Open >= d.Close {
		return fmt.Errorf("%s: open %s must precede close %s", d.Weekday, d.Open, d.Close)
	}
	if (d.LunchStart == nil) != (d.LunchEnd == nil) {
		return fmt.Errorf("%s: lunch window needs both start and end", d.Weekday)
	}
	if d.HasLunch() {
		if !(d.Open < *d.LunchStart && *d.LunchStart < *d.LunchEnd && *d.LunchEnd < d.Close) {
			return fmt.Errorf("%s: lunch %s-%s must sit inside %s-%s", d.Weekday, *d.LunchStart, *d.LunchEnd, d.Open, d.Close)
		}
	}
	return nil
}
