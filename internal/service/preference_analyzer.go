package service

import (
	"context"
	"sort"
	"time"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

// CustomerHistorySource supplies one customer's past reservations.
type CustomerHistorySource interface {
	ReservationsFor(ctx context.Context, customerID string) ([]models.Reservation, error)
}

// PreferenceAnalyzer derives weekday and time-of-day affinities per customer.
type PreferenceAnalyzer struct {
	source CustomerHistorySource
	cache  *CacheService
	ttl    time.Duration
}

// NewPreferenceAnalyzer wires the analyzer.
func NewPreferenceAnalyzer(source CustomerHistorySource, cache *CacheService, ttl time.Duration) *PreferenceAnalyzer {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &PreferenceAnalyzer{source: source, cache: cache, ttl: ttl}
}

// PreferenceCacheKey is the cache key of a customer's profile.
func PreferenceCacheKey(customerID string) string {
	return makeCacheKey("preference", customerID)
}

// Profile returns the customer's profile, or nil when there is no customer or
// no history. A nil profile is a neutral input.
func (a *PreferenceAnalyzer) Profile(ctx context.Context, customerID string) (*models.PreferenceProfile, error) {
	if customerID == "" || a.source == nil {
		return nil, nil
	}
	profile, _, err := remember(ctx, a.cache, PreferenceCacheKey(customerID), a.ttl, func() (*models.PreferenceProfile, error) {
		history, err := a.source.ReservationsFor(ctx, customerID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrAnalyticsUnavailable.Code, appErrors.ErrAnalyticsUnavailable.Status, "load customer history")
		}
		return BuildPreferenceProfile(customerID, history), nil
	})
	return profile, err
}

// BuildPreferenceProfile counts bookings per weekday and time band. Cancelled
// reservations are ignored.
func BuildPreferenceProfile(customerID string, history []models.Reservation) *models.PreferenceProfile {
	weekdays := make(map[models.Weekday]int)
	bands := make(map[models.TimeBand]int)
	total := 0
	for _, res := range history {
		if res.Status == models.ReservationStatusCancelled {
			continue
		}
		total++
		weekdays[models.WeekdayOf(res.Date)]++
		bands[models.BandForHour(res.StartTime.Hour())]++
	}
	if total == 0 {
		return nil
	}

	profile := &models.PreferenceProfile{
		CustomerID:      customerID,
		BookingCount:    total,
		LoyaltyTier:     LoyaltyTierFor(total),
		WeekdayWeights:  make([]models.WeekdayWeight, 0, len(weekdays)),
		TimeBandWeights: make([]models.TimeBandWeight, 0, len(bands)),
	}
	for weekday, count := range weekdays {
		profile.WeekdayWeights = append(profile.WeekdayWeights, models.WeekdayWeight{Weekday: weekday, Count: count})
	}
	sort.Slice(profile.WeekdayWeights, func(i, j int) bool {
		a, b := profile.WeekdayWeights[i], profile.WeekdayWeights[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Weekday < b.Weekday
	})
	for band, count := range bands {
		profile.TimeBandWeights = append(profile.TimeBandWeights, models.TimeBandWeight{Band: band, Count: count})
	}
	sort.Slice(profile.TimeBandWeights, func(i, j int) bool {
		a, b := profile.TimeBandWeights[i], profile.TimeBandWeights[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Band < b.Band
	})
	return profile
}

// LoyaltyTierFor maps booking count to a tier: 10+ gold, 5+ silver, 2+ bronze.
func LoyaltyTierFor(bookings int) models.LoyaltyTier {
	switch {
	case bookings >= 10:
		return models.LoyaltyGold
	case bookings >= 5:
		return models.LoyaltySilver
	case bookings >= 2:
		return models.LoyaltyBronze
	default:
		return models.LoyaltyNew
	}
}
