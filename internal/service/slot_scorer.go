package service

import (
	"context"
	"math"
	"time"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
)

// ScoreAdjustmentStrategy contributes an external score delta for a candidate,
// e.g. a weather forecast. It must be safe for concurrent use.
type ScoreAdjustmentStrategy interface {
	Adjust(ctx context.Context, date time.Time, start models.ClockTime, profile models.ServiceProfile) float64
}

// NoopAdjustment is the neutral strategy.
type NoopAdjustment struct{}

// Adjust always returns 0.
func (NoopAdjustment) Adjust(context.Context, time.Time, models.ClockTime, models.ServiceProfile) float64 {
	return 0
}

const (
	baseSlotScore            = 5.0
	longServiceMinutes       = 120
	defaultEfficiencyPercent = 90
)

var (
	optimalHours = map[int]bool{9: true, 10: true, 11: true, 14: true, 15: true, 16: true}
	rushHours    = map[int]bool{8: true, 12: true, 17: true}
)

// ScoreInput carries everything the scorer looks at for one candidate.
type ScoreInput struct {
	Date       time.Time
	Start      models.ClockTime
	Service    models.ServiceProfile
	Demand     *models.DemandStats
	Preference *models.PreferenceProfile
}

// SlotScorer rates candidates on a 0-10 scale.
type SlotScorer struct {
	adjustment ScoreAdjustmentStrategy
}

// NewSlotScorer composes the scorer with an external adjustment.
func NewSlotScorer(adjustment ScoreAdjustmentStrategy) *SlotScorer {
	if adjustment == nil {
		adjustment = NoopAdjustment{}
	}
	return &SlotScorer{adjustment: adjustment}
}

// Score builds the candidate for one start time.
func (s *SlotScorer) Score(ctx context.Context, in ScoreInput) models.Candidate {
	weekday := models.WeekdayOf(in.Date)
	hour := in.Start.Hour()
	total := in.Service.TotalMinutes()

	cell, hasHistory := in.Demand.Lookup(weekday, hour)

	score := baseSlotScore
	score += math.Max(0, 5-float64(cell.Count)/2)

	weekdayMatch := in.Preference.PrefersWeekday(weekday)
	bandMatch := in.Preference.PrefersBand(models.BandForHour(hour))
	if weekdayMatch {
		score += 2
	}
	if bandMatch {
		score += 2
	}

	if optimalHours[hour] {
		score++
	}
	if rushHours[hour] {
		score--
	}

	if total >= longServiceMinutes {
		if in.Start >= models.Clock(9, 0) && in.Start <= models.Clock(15, 0) {
			score++
		}
	} else if in.Start >= models.Clock(8, 0) && in.Start <= models.Clock(17, 0) {
		score += 0.5
	}

	if weekday == models.Saturday {
		score -= 0.5
	}

	score += s.adjustment.Adjust(ctx, in.Date, in.Start, in.Service)
	score = math.Round(clamp(score, 0, 10)*10) / 10

	efficiency := defaultEfficiencyPercent
	if hasHistory {
		efficiency = int(math.Round(100 * cell.SuccessRate))
	}
	match := 0
	if weekdayMatch {
		match += 50
	}
	if bandMatch {
		match += 50
	}

	level := models.BusyLevelForScore(score)
	return models.Candidate{
		Date:                 in.Date.Format(models.DateLayout),
		StartTime:            in.Start,
		EndTime:              in.Start.Add(total),
		Score:                score,
		BusyLevel:            level,
		Recommendation:       recommendationFor(level, weekdayMatch && bandMatch),
		CustomerMatchPercent: match,
		EfficiencyPercent:    efficiency,
	}
}

func recommendationFor(level models.BusyLevel, matchesHabit bool) string {
	if matchesHabit && (level == models.BusyLevelOptimal || level == models.BusyLevelGood) {
		return "Matches your usual day and time"
	}
	switch level {
	case models.BusyLevelOptimal:
		return "Quiet period, ideal for a relaxed visit"
	case models.BusyLevelGood:
		return "Good availability"
	case models.BusyLevelModerate:
		return "Moderate demand expected"
	default:
		return "Busy period, expect a short wait"
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
