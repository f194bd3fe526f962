package service

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

const testBusinessHours = "mon=08:00-18:00@12:30-13:00;tue=08:00-18:00@12:30-13:00;wed=08:00-18:00@12:30-13:00;thu=08:00-18:00@12:30-13:00;fri=08:00-18:00@12:30-13:00;sat=09:00-13:00"

// Sunday 2024-03-03 10:00 UTC; tomorrow is Monday 2024-03-04.
var testNow = time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

type stubCacheRepo struct {
	mu     sync.Mutex
	store  map[string][]byte
	getErr error
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return s.getErr
	}
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.store {
		if ok, _ := path.Match(pattern, key); ok {
			delete(s.store, key)
		}
	}
	return nil
}

func (s *stubCacheRepo) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.store[key]
	return ok
}

type fakeReservationStore struct {
	byDate map[string][]models.Reservation
	err    error
}

func (f *fakeReservationStore) ReservationsOn(_ context.Context, date time.Time) ([]models.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate[date.Format(models.DateLayout)], nil
}

type fakeHistory struct {
	rows  []models.HistoricalReservation
	err   error
	calls int
}

func (f *fakeHistory) ReservationsSince(context.Context, time.Time) ([]models.HistoricalReservation, error) {
	f.calls++
	return f.rows, f.err
}

type fakeCustomerHistory struct {
	byCustomer map[string][]models.Reservation
	err        error
	calls      int
}

func (f *fakeCustomerHistory) ReservationsFor(_ context.Context, customerID string) ([]models.Reservation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byCustomer[customerID], nil
}

func testCalendar(t *testing.T) *BusinessCalendar {
	t.Helper()
	days, err := ParseBusinessHours(testBusinessHours)
	require.NoError(t, err)
	calendar, err := NewBusinessCalendar(days)
	require.NoError(t, err)
	return calendar
}

func testCatalog(t *testing.T) *ServiceCatalog {
	t.Helper()
	catalog, err := NewServiceCatalog([]models.ServiceProfile{
		{ServiceID: "svc-oil", Name: "Oil change", DurationMinutes: 60, PrepMinutes: 10, CleanupMinutes: 5},
		{ServiceID: "svc-tyre", Name: "Tyre fitting", DurationMinutes: 30, PrepMinutes: 10, CleanupMinutes: 5, QuantityScaling: true},
		{ServiceID: "svc-major", Name: "Major service", DurationMinutes: 150, PrepMinutes: 15, CleanupMinutes: 15},
	}, 60)
	require.NoError(t, err)
	return catalog
}

type engineDeps struct {
	cache        *stubCacheRepo
	reservations *fakeReservationStore
	history      *fakeHistory
	customers    *fakeCustomerHistory
	metrics      *MetricsService
}

func newTestEngine(t *testing.T, deps engineDeps) *SchedulingService {
	t.Helper()
	if deps.cache == nil {
		deps.cache = &stubCacheRepo{}
	}
	if deps.reservations == nil {
		deps.reservations = &fakeReservationStore{}
	}
	sc := SchedulingContext{
		Cache:        NewCacheService(deps.cache, deps.metrics, time.Minute, zap.NewNop(), true),
		Reservations: deps.reservations,
		Metrics:      deps.metrics,
		Logger:       zap.NewNop(),
		Location:     time.UTC,
		Now:          func() time.Time { return testNow },
	}
	if deps.history != nil {
		sc.History = deps.history
	}
	if deps.customers != nil {
		sc.CustomerHistory = deps.customers
	}
	return NewSchedulingService(sc, testCalendar(t), testCatalog(t), SchedulingConfig{
		GranularityMinutes: 15,
		BufferMinutes:      15,
		HorizonDays:        14,
		MaxHorizonDays:     30,
	}, nil)
}

func clockStrings(starts []models.ClockTime) []string {
	out := make([]string, len(starts))
	for i, s := range starts {
		out[i] = s.String()
	}
	return out
}
