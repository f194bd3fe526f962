package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
)

type fixedAdjustment float64

func (f fixedAdjustment) Adjust(context.Context, time.Time, models.ClockTime, models.ServiceProfile) float64 {
	return float64(f)
}

func busyDemand(cells ...models.DemandCell) *models.DemandStats {
	return &models.DemandStats{Cells: cells}
}

func tuesdayMorningRegular() *models.PreferenceProfile {
	history := []models.Reservation{
		{Date: day(2, 6), StartTime: models.Clock(9, 0)},
		{Date: day(2, 13), StartTime: models.Clock(9, 30)},
		{Date: day(2, 20), StartTime: models.Clock(10, 0)},
	}
	return BuildPreferenceProfile("cust-tue", history)
}

func TestScoreNeutralInputs(t *testing.T) {
	oil, err := testCatalog(t).ProfileFor("svc-oil", 1)
	require.NoError(t, err)
	demand := busyDemand(models.DemandCell{Weekday: models.Wednesday, Hour: 14, Count: 10, SuccessRate: 0.8})

	got := NewSlotScorer(nil).Score(context.Background(), ScoreInput{
		Date: day(3, 6), Start: models.Clock(14, 0), Service: oil, Demand: demand,
	})

	// 5 base, 0 demand bonus, +1 optimal hour, +0.5 short service window.
	assert.Equal(t, 6.5, got.Score)
	assert.Equal(t, models.BusyLevelGood, got.BusyLevel)
	assert.Equal(t, 80, got.EfficiencyPercent)
	assert.Equal(t, 0, got.CustomerMatchPercent)
	assert.Equal(t, "15:15", got.EndTime.String())
	assert.Equal(t, "2024-03-06", got.Date)
}

func TestScoreTuesdayMorningPreferenceBonus(t *testing.T) {
	oil, err := testCatalog(t).ProfileFor("svc-oil", 1)
	require.NoError(t, err)
	demand := busyDemand(
		models.DemandCell{Weekday: models.Tuesday, Hour: 8, Count: 10, SuccessRate: 1},
		models.DemandCell{Weekday: models.Tuesday, Hour: 10, Count: 10, SuccessRate: 1},
		models.DemandCell{Weekday: models.Wednesday, Hour: 14, Count: 10, SuccessRate: 1},
	)
	profile := tuesdayMorningRegular()
	require.NotNil(t, profile)
	scorer := NewSlotScorer(NoopAdjustment{})
	ctx := context.Background()

	without := scorer.Score(ctx, ScoreInput{Date: day(3, 5), Start: models.Clock(8, 0), Service: oil, Demand: demand})
	with := scorer.Score(ctx, ScoreInput{Date: day(3, 5), Start: models.Clock(8, 0), Service: oil, Demand: demand, Preference: profile})
	assert.Equal(t, 4.5, without.Score)
	assert.Equal(t, 8.5, with.Score)
	assert.InDelta(t, 4.0, with.Score-without.Score, 1e-9)
	assert.Equal(t, 100, with.CustomerMatchPercent)

	tuesday := scorer.Score(ctx, ScoreInput{Date: day(3, 5), Start: models.Clock(10, 0), Service: oil, Demand: demand, Preference: profile})
	wednesday := scorer.Score(ctx, ScoreInput{Date: day(3, 6), Start: models.Clock(14, 0), Service: oil, Demand: demand, Preference: profile})
	assert.Greater(t, tuesday.Score, wednesday.Score)
	assert.Equal(t, "Matches your usual day and time", tuesday.Recommendation)
}

func TestScoreLongServiceWindow(t *testing.T) {
	major, err := testCatalog(t).ProfileFor("svc-major", 1)
	require.NoError(t, err)
	demand := busyDemand(
		models.DemandCell{Weekday: models.Monday, Hour: 15, Count: 10},
		models.DemandCell{Weekday: models.Monday, Hour: 13, Count: 10},
	)
	scorer := NewSlotScorer(nil)

	inside := scorer.Score(context.Background(), ScoreInput{Date: day(3, 4), Start: models.Clock(15, 0), Service: major, Demand: demand})
	outside := scorer.Score(context.Background(), ScoreInput{Date: day(3, 4), Start: models.Clock(15, 15), Service: major, Demand: demand})
	// Both are optimal hours; only 15:00 is inside the long-service window.
	assert.Equal(t, 7.0, inside.Score)
	assert.Equal(t, 6.0, outside.Score)
}

func TestScoreSaturdayPenaltyAndQuietBonus(t *testing.T) {
	oil, err := testCatalog(t).ProfileFor("svc-oil", 1)
	require.NoError(t, err)
	got := NewSlotScorer(nil).Score(context.Background(), ScoreInput{Date: day(3, 9), Start: models.Clock(11, 0), Service: oil})
	// 5 + 5 quiet + 1 optimal + 0.5 window - 0.5 saturday = 11 -> clamped.
	assert.Equal(t, 10.0, got.Score)
	assert.Equal(t, defaultEfficiencyPercent, got.EfficiencyPercent)
}

func TestScoreAlwaysWithinBounds(t *testing.T) {
	catalog := testCatalog(t)
	demand := busyDemand(models.DemandCell{Weekday: models.Monday, Hour: 8, Count: 40})
	profile := tuesdayMorningRegular()
	for _, adj := range []float64{-50, -3, 0, 3, 50} {
		scorer := NewSlotScorer(fixedAdjustment(adj))
		for _, svc := range catalog.List() {
			for d := 4; d <= 9; d++ {
				for start := models.Clock(8, 0); start < models.Clock(18, 0); start = start.Add(15) {
					got := scorer.Score(context.Background(), ScoreInput{Date: day(3, d), Start: start, Service: svc, Demand: demand, Preference: profile})
					assert.GreaterOrEqual(t, got.Score, 0.0)
					assert.LessOrEqual(t, got.Score, 10.0)
					assert.Equal(t, models.BusyLevelForScore(got.Score), got.BusyLevel)
				}
			}
		}
	}
}

func TestBusyLevelMonotonic(t *testing.T) {
	rank := map[models.BusyLevel]int{
		models.BusyLevelBusy:     0,
		models.BusyLevelModerate: 1,
		models.BusyLevelGood:     2,
		models.BusyLevelOptimal:  3,
	}
	prev := -1
	for i := 0; i <= 100; i++ {
		level := rank[models.BusyLevelForScore(float64(i)/10)]
		assert.GreaterOrEqual(t, level, prev)
		prev = level
	}
}
