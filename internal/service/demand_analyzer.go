package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

// HistorySource supplies the reservations used for demand statistics.
type HistorySource interface {
	ReservationsSince(ctx context.Context, windowStart time.Time) ([]models.HistoricalReservation, error)
}

// DemandAnalyzerConfig tunes the rolling window.
type DemandAnalyzerConfig struct {
	WindowDays    int
	PeakThreshold int
	TTL           time.Duration
}

// DemandAnalyzer aggregates historical bookings per weekday and hour.
type DemandAnalyzer struct {
	source   HistorySource
	calendar *BusinessCalendar
	cache    *CacheService
	metrics  *MetricsService
	cfg      DemandAnalyzerConfig
}

// NewDemandAnalyzer wires the analyzer.
func NewDemandAnalyzer(source HistorySource, calendar *BusinessCalendar, cache *CacheService, metrics *MetricsService, cfg DemandAnalyzerConfig) *DemandAnalyzer {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 90
	}
	if cfg.PeakThreshold <= 0 {
		cfg.PeakThreshold = 3
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &DemandAnalyzer{source: source, calendar: calendar, cache: cache, metrics: metrics, cfg: cfg}
}

// Stats returns demand statistics for the window ending at today. Failures of
// the history source are reported as ErrAnalyticsUnavailable.
func (a *DemandAnalyzer) Stats(ctx context.Context, today time.Time) (*models.DemandStats, bool, error) {
	windowStart := today.AddDate(0, 0, -a.cfg.WindowDays)
	key := makeCacheKey("demand", strconv.Itoa(a.cfg.WindowDays), windowStart.Format(models.DateLayout))
	return remember(ctx, a.cache, key, a.cfg.TTL, func() (*models.DemandStats, error) {
		start := time.Now()
		rows, err := a.source.ReservationsSince(ctx, windowStart)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrAnalyticsUnavailable.Code, appErrors.ErrAnalyticsUnavailable.Status, "load demand history")
		}
		a.metrics.ObserveDBQuery("demand_history", time.Since(start))
		return BuildDemandStats(rows, a.calendar, windowStart, a.cfg.PeakThreshold), nil
	})
}

type hourKey struct {
	weekday models.Weekday
	hour    int
}

type demandAccumulator struct {
	count     int
	valueSum  float64
	succeeded int
}

// BuildDemandStats folds history rows into per weekday/hour cells. Peak slots
// reach peakThreshold bookings; quiet slots are open hours with no bookings.
func BuildDemandStats(rows []models.HistoricalReservation, calendar *BusinessCalendar, windowStart time.Time, peakThreshold int) *models.DemandStats {
	acc := make(map[hourKey]*demandAccumulator)
	for _, row := range rows {
		key := hourKey{weekday: models.WeekdayOf(row.Date), hour: row.StartTime.Hour()}
		cell, ok := acc[key]
		if !ok {
			cell = &demandAccumulator{}
			acc[key] = cell
		}
		cell.count++
		cell.valueSum += row.Value
		if row.Succeeded {
			cell.succeeded++
		}
	}

	stats := &models.DemandStats{
		WindowStart: windowStart,
		Cells:       make([]models.DemandCell, 0, len(acc)),
		PeakSlots:   []models.HourSlot{},
		QuietSlots:  []models.HourSlot{},
	}
	for key, cell := range acc {
		stats.Cells = append(stats.Cells, models.DemandCell{
			Weekday:     key.weekday,
			Hour:        key.hour,
			Count:       cell.count,
			AvgValue:    math.Round(cell.valueSum/float64(cell.count)*100) / 100,
			SuccessRate: float64(cell.succeeded) / float64(cell.count),
		})
	}
	sort.Slice(stats.Cells, func(i, j int) bool {
		if stats.Cells[i].Weekday != stats.Cells[j].Weekday {
			return stats.Cells[i].Weekday < stats.Cells[j].Weekday
		}
		return stats.Cells[i].Hour < stats.Cells[j].Hour
	})

	for _, cell := range stats.Cells {
		if cell.Count >= peakThreshold {
			stats.PeakSlots = append(stats.PeakSlots, models.HourSlot{Weekday: cell.Weekday, Hour: cell.Hour})
		}
	}
	for _, weekday := range calendar.OpenWeekdays() {
		for _, hour := range calendar.OpenHours(weekday) {
			if _, seen := acc[hourKey{weekday: weekday, hour: hour}]; !seen {
				stats.QuietSlots = append(stats.QuietSlots, models.HourSlot{Weekday: weekday, Hour: hour})
			}
		}
	}
	return stats
}

// averageHourlyDemand is the mean booking count over the open hours of weekday.
func averageHourlyDemand(stats *models.DemandStats, calendar *BusinessCalendar, weekday models.Weekday) float64 {
	hours := calendar.OpenHours(weekday)
	if len(hours) == 0 || stats == nil {
		return 0
	}
	total := 0
	for _, hour := range hours {
		if cell, ok := stats.Lookup(weekday, hour); ok {
			total += cell.Count
		}
	}
	return float64(total) / float64(len(hours))
}

func logDegraded(logger *zap.Logger, metrics *MetricsService, source string, err error) {
	metrics.RecordDegraded(source)
	logger.Warn("scheduling analytics degraded to neutral weights", zap.String("source", source), zap.Error(err))
}
