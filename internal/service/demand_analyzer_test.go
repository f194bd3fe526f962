package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

func TestBuildDemandStats(t *testing.T) {
	rows := []models.HistoricalReservation{
		{Date: day(2, 5), StartTime: models.Clock(8, 15), Value: 100, Succeeded: true},
		{Date: day(2, 12), StartTime: models.Clock(8, 45), Value: 50, Succeeded: false},
		{Date: day(2, 19), StartTime: models.Clock(8, 0), Value: 30, Succeeded: true},
		{Date: day(2, 7), StartTime: models.Clock(14, 0), Value: 80, Succeeded: true},
	}
	calendar := testCalendar(t)

	stats := BuildDemandStats(rows, calendar, day(1, 1), 3)

	monday8, ok := stats.Lookup(models.Monday, 8)
	require.True(t, ok)
	assert.Equal(t, 3, monday8.Count)
	assert.Equal(t, 60.0, monday8.AvgValue)
	assert.InDelta(t, 2.0/3.0, monday8.SuccessRate, 1e-9)

	assert.Equal(t, []models.HourSlot{{Weekday: models.Monday, Hour: 8}}, stats.PeakSlots)
	assert.NotContains(t, stats.QuietSlots, models.HourSlot{Weekday: models.Monday, Hour: 8})
	assert.NotContains(t, stats.QuietSlots, models.HourSlot{Weekday: models.Wednesday, Hour: 14})
	assert.Contains(t, stats.QuietSlots, models.HourSlot{Weekday: models.Saturday, Hour: 12})
	assert.NotContains(t, stats.QuietSlots, models.HourSlot{Weekday: models.Sunday, Hour: 10})

	// 10 weekday hours * 5 + 4 Saturday hours, less the two booked cells.
	assert.Len(t, stats.QuietSlots, 10*5+4-2)
}

func TestDemandStatsCachedAcrossCalls(t *testing.T) {
	history := &fakeHistory{rows: []models.HistoricalReservation{{Date: day(2, 5), StartTime: models.Clock(9, 0), Succeeded: true}}}
	cache := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	analyzer := NewDemandAnalyzer(history, testCalendar(t), cache, nil, DemandAnalyzerConfig{})

	first, hit, err := analyzer.Stats(context.Background(), day(3, 3))
	require.NoError(t, err)
	assert.False(t, hit)
	second, hit, err := analyzer.Stats(context.Background(), day(3, 3))
	require.NoError(t, err)
	assert.True(t, hit)

	assert.Equal(t, 1, history.calls)
	assert.Equal(t, first.Cells, second.Cells)
	assert.Equal(t, day(3, 3).AddDate(0, 0, -90), first.WindowStart)
}

func TestDemandStatsSourceFailure(t *testing.T) {
	analyzer := NewDemandAnalyzer(&fakeHistory{err: errors.New("timeout")}, testCalendar(t), nil, nil, DemandAnalyzerConfig{WindowDays: 30})

	_, _, err := analyzer.Stats(context.Background(), day(3, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrAnalyticsUnavailable))
}
