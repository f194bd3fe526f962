package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
)

func TestDayScore(t *testing.T) {
	ranker := NewDayRanker(testCalendar(t), 0, 0)

	assert.Equal(t, 10.0, ranker.DayScore(models.Tuesday, nil, nil))
	assert.Equal(t, 9.0, ranker.DayScore(models.Monday, nil, nil))
	assert.Equal(t, 8.0, ranker.DayScore(models.Saturday, nil, nil))

	// Monday has 10 open hours; 45 bookings average 4.5 per hour.
	demand := &models.DemandStats{Cells: []models.DemandCell{
		{Weekday: models.Monday, Hour: 8, Count: 20},
		{Weekday: models.Monday, Hour: 9, Count: 25},
	}}
	assert.Equal(t, 7.5, ranker.DayScore(models.Monday, demand, nil))

	profile := &models.PreferenceProfile{WeekdayWeights: []models.WeekdayWeight{{Weekday: models.Saturday, Count: 4}}}
	assert.Equal(t, 10.0, ranker.DayScore(models.Saturday, nil, profile))
}

func TestSuggestionLimitsAndOrdersSlots(t *testing.T) {
	ranker := NewDayRanker(testCalendar(t), 14, 2)
	candidates := []models.Candidate{
		{StartTime: models.Clock(10, 0), Score: 7},
		{StartTime: models.Clock(8, 0), Score: 9},
		{StartTime: models.Clock(9, 0), Score: 7},
	}

	got := ranker.Suggestion("2024-03-05", models.Tuesday, 7, candidates, 0)
	require.Len(t, got.Slots, 2)
	assert.Equal(t, models.Clock(8, 0), got.Slots[0].StartTime)
	assert.Equal(t, models.Clock(9, 0), got.Slots[1].StartTime)
	assert.True(t, got.Recommended)

	got = ranker.Suggestion("2024-03-05", models.Tuesday, 6.9, candidates, 3)
	assert.Len(t, got.Slots, 3)
	assert.False(t, got.Recommended)
	assert.Equal(t, models.Clock(10, 0), candidates[0].StartTime, "input must not be reordered")
}

func TestRankOrdersByScoreThenDate(t *testing.T) {
	ranker := NewDayRanker(testCalendar(t), 2, 20)
	days := []models.DaySuggestion{
		{Date: "2024-03-07", DayScore: 8},
		{Date: "2024-03-05", DayScore: 9},
		{Date: "2024-03-04", DayScore: 8},
	}

	got := ranker.Rank(days)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-05", got[0].Date)
	assert.Equal(t, "2024-03-04", got[1].Date)
}
