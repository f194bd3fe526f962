package service

import (
	"math"
	"sort"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
)

const (
	baseDayScore             = 5.0
	recommendedDayScore      = 7.0
	preferredWeekdayTopCount = 3
	defaultTopDays           = 14
	defaultSlotsPerDay       = 20
)

// DayRanker orders the horizon by aggregate day score.
type DayRanker struct {
	calendar    *BusinessCalendar
	topDays     int
	slotsPerDay int
}

// NewDayRanker builds a ranker keeping topDays days of slotsPerDay slots.
func NewDayRanker(calendar *BusinessCalendar, topDays, slotsPerDay int) *DayRanker {
	if topDays <= 0 {
		topDays = defaultTopDays
	}
	if slotsPerDay <= 0 {
		slotsPerDay = defaultSlotsPerDay
	}
	return &DayRanker{calendar: calendar, topDays: topDays, slotsPerDay: slotsPerDay}
}

// DayScore rates a weekday: workdays and mid-week are favoured, as are the
// customer's favourite weekdays and historically quiet days.
func (r *DayRanker) DayScore(weekday models.Weekday, demand *models.DemandStats, preference *models.PreferenceProfile) float64 {
	score := baseDayScore
	if weekday <= models.Friday {
		score++
	}
	if weekday >= models.Tuesday && weekday <= models.Thursday {
		score++
	}
	for _, preferred := range preference.TopWeekdays(preferredWeekdayTopCount) {
		if preferred == weekday {
			score += 2
			break
		}
	}
	score += math.Max(0, 3-averageHourlyDemand(demand, r.calendar, weekday)/3)
	return math.Round(score*10) / 10
}

// Suggestion assembles a day from its scored candidates, keeping the best
// limit slots (the configured default when limit <= 0).
func (r *DayRanker) Suggestion(date string, weekday models.Weekday, dayScore float64, candidates []models.Candidate, limit int) models.DaySuggestion {
	if limit <= 0 {
		limit = r.slotsPerDay
	}
	slots := rankCandidates(candidates)
	if len(slots) > limit {
		slots = slots[:limit]
	}
	return models.DaySuggestion{
		Date:        date,
		Weekday:     weekday,
		DayScore:    dayScore,
		Recommended: dayScore >= recommendedDayScore,
		Slots:       slots,
	}
}

// Rank sorts days by score (earlier date first on ties) and keeps the top days.
func (r *DayRanker) Rank(days []models.DaySuggestion) []models.DaySuggestion {
	sort.SliceStable(days, func(i, j int) bool {
		if days[i].DayScore != days[j].DayScore {
			return days[i].DayScore > days[j].DayScore
		}
		return days[i].Date < days[j].Date
	})
	if len(days) > r.topDays {
		days = days[:r.topDays]
	}
	return days
}

func rankCandidates(candidates []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
