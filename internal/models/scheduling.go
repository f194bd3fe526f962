package models

// BusyLevel buckets a candidate score for display.
type BusyLevel string

const (
	BusyLevelOptimal  BusyLevel = "OPTIMAL"
	BusyLevelGood     BusyLevel = "GOOD"
	BusyLevelModerate BusyLevel = "MODERATE"
	BusyLevelBusy     BusyLevel = "BUSY"
)

// BusyLevelForScore maps a 0-10 score to a level.
func BusyLevelForScore(score float64) BusyLevel {
	switch {
	case score >= 8:
		return BusyLevelOptimal
	case score >= 6:
		return BusyLevelGood
	case score >= 4:
		return BusyLevelModerate
	default:
		return BusyLevelBusy
	}
}

// Candidate is one proposed appointment start.
type Candidate struct {
	Date                 string    `json:"date"`
	StartTime            ClockTime `json:"startTime"`
	EndTime              ClockTime `json:"endTime"`
	Score                float64   `json:"score"`
	BusyLevel            BusyLevel `json:"busyLevel"`
	Recommendation       string    `json:"recommendation"`
	CustomerMatchPercent int       `json:"customerMatchPercent"`
	EfficiencyPercent    int       `json:"efficiencyPercent"`
}

// DaySuggestion groups the best candidates of one date.
type DaySuggestion struct {
	Date        string      `json:"date"`
	Weekday     Weekday     `json:"weekday"`
	DayScore    float64     `json:"dayScore"`
	Recommended bool        `json:"recommended"`
	Slots       []Candidate `json:"slots"`
}
