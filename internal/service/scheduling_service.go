package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

// ReservationStore reads committed reservations for availability checks.
type ReservationStore interface {
	ReservationsOn(ctx context.Context, date time.Time) ([]models.Reservation, error)
}

// SchedulingContext holds the collaborators of the scheduling engine. It is
// passed in at construction; the engine keeps no other state.
type SchedulingContext struct {
	Cache           *CacheService
	Reservations    ReservationStore
	History         HistorySource
	CustomerHistory CustomerHistorySource
	Metrics         *MetricsService
	Logger          *zap.Logger
	Location        *time.Location
	Now             func() time.Time
}

// SchedulingConfig is the engine's tuning surface.
type SchedulingConfig struct {
	GranularityMinutes int
	BufferMinutes      int
	HorizonDays        int
	MaxHorizonDays     int
	TopDays            int
	SlotsPerDay        int
	DemandWindowDays   int
	PeakThreshold      int
	DemandTTL          time.Duration
	PreferenceTTL      time.Duration
	SuggestionTTL      time.Duration
}

// SuggestDaysQuery asks for the best days in a horizon.
type SuggestDaysQuery struct {
	ServiceID      string
	Quantity       int
	StartDate      time.Time
	HorizonDays    int
	CustomerID     string
	MaxSuggestions int
}

// SlotsForDateQuery asks for ranked slots on one date.
type SlotsForDateQuery struct {
	ServiceID  string
	Quantity   int
	Date       time.Time
	CustomerID string
}

// SchedulingService generates, filters, scores and ranks appointment windows.
type SchedulingService struct {
	reservations ReservationStore
	cache        *CacheService
	metrics      *MetricsService
	logger       *zap.Logger
	location     *time.Location
	now          func() time.Time

	calendar    *BusinessCalendar
	catalog     *ServiceCatalog
	generator   *SlotGenerator
	conflicts   *ConflictChecker
	scorer      *SlotScorer
	ranker      *DayRanker
	demand      *DemandAnalyzer
	preferences *PreferenceAnalyzer
	cfg         SchedulingConfig
}

// NewSchedulingService composes the engine. A nil adjustment means no
// external score adjustment.
func NewSchedulingService(sc SchedulingContext, calendar *BusinessCalendar, catalog *ServiceCatalog, cfg SchedulingConfig, adjustment ScoreAdjustmentStrategy) *SchedulingService {
	if sc.Logger == nil {
		sc.Logger = zap.NewNop()
	}
	if sc.Location == nil {
		sc.Location = time.Local
	}
	if sc.Now == nil {
		sc.Now = time.Now
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 30
	}
	if cfg.MaxHorizonDays <= 0 {
		cfg.MaxHorizonDays = 30
	}
	if cfg.SuggestionTTL <= 0 {
		cfg.SuggestionTTL = 5 * time.Minute
	}
	return &SchedulingService{
		reservations: sc.Reservations,
		cache:        sc.Cache,
		metrics:      sc.Metrics,
		logger:       sc.Logger,
		location:     sc.Location,
		now:          sc.Now,
		calendar:     calendar,
		catalog:      catalog,
		generator:    NewSlotGenerator(cfg.GranularityMinutes),
		conflicts:    NewConflictChecker(cfg.BufferMinutes),
		scorer:       NewSlotScorer(adjustment),
		ranker:       NewDayRanker(calendar, cfg.TopDays, cfg.SlotsPerDay),
		demand: NewDemandAnalyzer(sc.History, calendar, sc.Cache, sc.Metrics, DemandAnalyzerConfig{
			WindowDays:    cfg.DemandWindowDays,
			PeakThreshold: cfg.PeakThreshold,
			TTL:           cfg.DemandTTL,
		}),
		preferences: NewPreferenceAnalyzer(sc.CustomerHistory, sc.Cache, cfg.PreferenceTTL),
		cfg:         cfg,
	}
}

// Calendar exposes the business calendar.
func (s *SchedulingService) Calendar() *BusinessCalendar { return s.calendar }

// Catalog exposes the service catalog.
func (s *SchedulingService) Catalog() *ServiceCatalog { return s.catalog }

// SuggestDays ranks the business days of the horizon for the service. Closed
// and fully booked days are left out. The boolean reports a cache hit.
func (s *SchedulingService) SuggestDays(ctx context.Context, q SuggestDaysQuery) ([]models.DaySuggestion, bool, error) {
	profile, err := s.catalog.ProfileFor(q.ServiceID, q.Quantity)
	if err != nil {
		return nil, false, err
	}

	today := s.today()
	tomorrow := today.AddDate(0, 0, 1)
	lastDay := today.AddDate(0, 0, s.cfg.MaxHorizonDays)
	start := tomorrow
	if !q.StartDate.IsZero() {
		if requested := s.dateOnly(q.StartDate); requested.After(start) {
			start = requested
		}
	}
	horizon := q.HorizonDays
	if horizon <= 0 {
		horizon = s.cfg.HorizonDays
	}

	key := makeCacheKey("suggest", profile.ServiceID, strconv.Itoa(profile.Quantity), start.Format(models.DateLayout),
		strconv.Itoa(horizon), strconv.Itoa(q.MaxSuggestions), q.CustomerID)
	return remember(ctx, s.cache, key, s.cfg.SuggestionTTL, func() ([]models.DaySuggestion, error) {
		began := time.Now()
		defer func() { s.metrics.ObserveScheduling("suggest_days", time.Since(began)) }()

		demand, preference := s.signals(ctx, today, q.CustomerID)
		days := make([]models.DaySuggestion, 0, horizon)
		for offset := 0; offset < horizon; offset++ {
			date := start.AddDate(0, 0, offset)
			if date.After(lastDay) {
				break
			}
			if _, open := s.calendar.HoursOn(date); !open {
				continue
			}
			day, err := s.buildDay(ctx, date, profile, demand, preference, q.MaxSuggestions)
			if err != nil {
				return nil, err
			}
			if len(day.Slots) == 0 {
				continue
			}
			days = append(days, day)
		}
		return s.ranker.Rank(days), nil
	})
}

// SlotsForDate ranks the slots of one date, which must fall between tomorrow
// and the maximum horizon. Closed days yield an empty slot list.
func (s *SchedulingService) SlotsForDate(ctx context.Context, q SlotsForDateQuery) (*models.DaySuggestion, bool, error) {
	profile, err := s.catalog.ProfileFor(q.ServiceID, q.Quantity)
	if err != nil {
		return nil, false, err
	}
	date := s.dateOnly(q.Date)
	if err := s.CheckBookable(date); err != nil {
		return nil, false, err
	}

	key := SlotsCacheKey(profile.ServiceID, profile.Quantity, date, q.CustomerID)
	return remember(ctx, s.cache, key, s.cfg.SuggestionTTL, func() (*models.DaySuggestion, error) {
		began := time.Now()
		defer func() { s.metrics.ObserveScheduling("slots_for_date", time.Since(began)) }()

		if _, open := s.calendar.HoursOn(date); !open {
			return &models.DaySuggestion{
				Date:    date.Format(models.DateLayout),
				Weekday: models.WeekdayOf(date),
				Slots:   []models.Candidate{},
			}, nil
		}
		demand, preference := s.signals(ctx, s.today(), q.CustomerID)
		day, err := s.buildDay(ctx, date, profile, demand, preference, 0)
		if err != nil {
			return nil, err
		}
		return &day, nil
	})
}

// CheckBookable rejects dates before tomorrow or beyond the maximum horizon.
func (s *SchedulingService) CheckBookable(date time.Time) error {
	today := s.today()
	date = s.dateOnly(date)
	if date.Before(today.AddDate(0, 0, 1)) || date.After(today.AddDate(0, 0, s.cfg.MaxHorizonDays)) {
		return appErrors.Clone(appErrors.ErrDateOutOfRange, "date must be between tomorrow and "+today.AddDate(0, 0, s.cfg.MaxHorizonDays).Format(models.DateLayout))
	}
	return nil
}

// OffersStart reports whether start is a generated candidate on date for the
// profile, ignoring existing reservations.
func (s *SchedulingService) OffersStart(date time.Time, profile models.ServiceProfile, start models.ClockTime) bool {
	for _, candidate := range s.generator.Generate(s.calendar, s.dateOnly(date), profile.TotalMinutes()) {
		if candidate == start {
			return true
		}
	}
	return false
}

// Conflicts exposes the buffered overlap test for the commit path.
func (s *SchedulingService) Conflicts(start, end models.ClockTime, existing []models.Reservation) bool {
	return s.conflicts.Conflicts(start, end, s.normalize(existing))
}

func (s *SchedulingService) buildDay(ctx context.Context, date time.Time, profile models.ServiceProfile, demand *models.DemandStats, preference *models.PreferenceProfile, limit int) (models.DaySuggestion, error) {
	total := profile.TotalMinutes()
	starts := s.generator.Generate(s.calendar, date, total)
	s.metrics.CountCandidates("generated", len(starts))

	reservations, err := s.reservationsOn(ctx, date)
	if err != nil {
		return models.DaySuggestion{}, err
	}
	starts = s.conflicts.Filter(starts, total, reservations)
	s.metrics.CountCandidates("conflict_free", len(starts))

	candidates := make([]models.Candidate, 0, len(starts))
	for _, start := range starts {
		candidates = append(candidates, s.scorer.Score(ctx, ScoreInput{
			Date:       date,
			Start:      start,
			Service:    profile,
			Demand:     demand,
			Preference: preference,
		}))
	}
	weekday := models.WeekdayOf(date)
	dayScore := s.ranker.DayScore(weekday, demand, preference)
	return s.ranker.Suggestion(date.Format(models.DateLayout), weekday, dayScore, candidates, limit), nil
}

func (s *SchedulingService) reservationsOn(ctx context.Context, date time.Time) ([]models.Reservation, error) {
	if s.reservations == nil {
		return nil, nil
	}
	start := time.Now()
	reservations, err := s.reservations.ReservationsOn(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCollaboratorUnavailable.Code, appErrors.ErrCollaboratorUnavailable.Status, "load reservations for "+date.Format(models.DateLayout))
	}
	s.metrics.ObserveDBQuery("reservations_on", time.Since(start))
	return s.normalize(reservations), nil
}

// normalize fills in end times the store could not estimate.
func (s *SchedulingService) normalize(reservations []models.Reservation) []models.Reservation {
	out := make([]models.Reservation, len(reservations))
	for i, res := range reservations {
		if res.EndTime <= res.StartTime {
			res.EndTime = res.StartTime.Add(s.catalog.EstimateMinutes(res.ServiceID, res.Quantity))
		}
		out[i] = res
	}
	return out
}

// signals loads demand and preference data. Failures only cost ranking
// quality, so they degrade to neutral inputs instead of failing the request.
func (s *SchedulingService) signals(ctx context.Context, today time.Time, customerID string) (*models.DemandStats, *models.PreferenceProfile) {
	var demand *models.DemandStats
	if s.demand.source != nil {
		stats, _, err := s.demand.Stats(ctx, today)
		if err != nil {
			logDegraded(s.logger, s.metrics, "demand", err)
		} else {
			demand = stats
		}
	}
	preference, err := s.preferences.Profile(ctx, customerID)
	if err != nil {
		logDegraded(s.logger, s.metrics, "preference", err)
		preference = nil
	}
	return demand, preference
}

func (s *SchedulingService) today() time.Time {
	return s.dateOnly(s.now().In(s.location))
}

// dateOnly keeps the calendar date of t as written, anchored at midnight in
// the workshop location.
func (s *SchedulingService) dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}

// SlotsCacheKey is the cache key of a SlotsForDate result.
func SlotsCacheKey(serviceID string, quantity int, date time.Time, customerID string) string {
	return makeCacheKey("slots", serviceID, strconv.Itoa(quantity), date.Format(models.DateLayout), customerID)
}

// Services lists the bookable service profiles.
func (s *SchedulingService) Services() []models.ServiceProfile {
	return s.catalog.List()
}

// BusinessHours lists the opening hours of every open weekday.
func (s *SchedulingService) BusinessHours() []models.BusinessDay {
	return s.calendar.Days()
}
