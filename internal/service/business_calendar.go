package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
)

var weekdayNames = map[string]models.Weekday{
	"mon": models.Monday,
	"tue": models.Tuesday,
	"wed": models.Wednesday,
	"thu": models.Thursday,
	"fri": models.Friday,
	"sat": models.Saturday,
	"sun": models.Sunday,
}

// BusinessCalendar answers opening-hour lookups. Weekdays without an entry are closed.
type BusinessCalendar struct {
	days map[models.Weekday]models.BusinessDay
}

// NewBusinessCalendar validates and indexes the opening hours.
func NewBusinessCalendar(days []models.BusinessDay) (*BusinessCalendar, error) {
	index := make(map[models.Weekday]models.BusinessDay, len(days))
	for _, day := range days {
		if err := day.Validate(); err != nil {
			return nil, err
		}
		if _, dup := index[day.Weekday]; dup {
			return nil, fmt.Errorf("duplicate business hours for %s", day.Weekday)
		}
		index[day.Weekday] = day
	}
	return &BusinessCalendar{days: index}, nil
}

// ParseBusinessHours reads "mon=08:00-18:00@12:30-13:00;sat=09:00-13:00".
// The "@start-end" suffix declares the lunch blackout.
func ParseBusinessHours(raw string) ([]models.BusinessDay, error) {
	var days []models.BusinessDay
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, hours, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("business hours entry %q: missing '='", entry)
		}
		weekday, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("business hours entry %q: unknown weekday", entry)
		}
		openRange, lunchRange, hasLunch := strings.Cut(hours, "@")
		open, closing, err := parseClockRange(openRange)
		if err != nil {
			return nil, fmt.Errorf("business hours entry %q: %w", entry, err)
		}
		day := models.BusinessDay{Weekday: weekday, Open: open, Close: closing}
		if hasLunch {
			lunchStart, lunchEnd, err := parseClockRange(lunchRange)
			if err != nil {
				return nil, fmt.Errorf("business hours entry %q: lunch: %w", entry, err)
			}
			day.LunchStart = &lunchStart
			day.LunchEnd = &lunchEnd
		}
		days = append(days, day)
	}
	return days, nil
}

func parseClockRange(raw string) (models.ClockTime, models.ClockTime, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(raw), "-")
	if !ok {
		return 0, 0, fmt.Errorf("range %q must be HH:MM-HH:MM", raw)
	}
	start, err := models.ParseClock(from)
	if err != nil {
		return 0, 0, err
	}
	end, err := models.ParseClock(to)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// HoursFor returns the opening hours for weekday; false means closed.
func (c *BusinessCalendar) HoursFor(weekday models.Weekday) (models.BusinessDay, bool) {
	if c == nil {
		return models.BusinessDay{}, false
	}
	day, ok := c.days[weekday]
	return day, ok
}

// HoursOn is HoursFor for the weekday of date.
func (c *BusinessCalendar) HoursOn(date time.Time) (models.BusinessDay, bool) {
	return c.HoursFor(models.WeekdayOf(date))
}

// OpenWeekdays lists open weekdays in Monday-first order.
func (c *BusinessCalendar) OpenWeekdays() []models.Weekday {
	if c == nil {
		return nil
	}
	out := make([]models.Weekday, 0, len(c.days))
	for weekday := range c.days {
		out = append(out, weekday)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OpenHours lists every clock hour that overlaps the opening hours of weekday.
func (c *BusinessCalendar) OpenHours(weekday models.Weekday) []int {
	day, ok := c.HoursFor(weekday)
	if !ok {
		return nil
	}
	var hours []int
	for hour := day.Open.Hour(); models.Clock(hour, 0) < day.Close; hour++ {
		hours = append(hours, hour)
	}
	return hours
}

// Days returns the configured business days in Monday-first order.
func (c *BusinessCalendar) Days() []models.BusinessDay {
	weekdays := c.OpenWeekdays()
	out := make([]models.BusinessDay, 0, len(weekdays))
	for _, weekday := range weekdays {
		out = append(out, c.days[weekday])
	}
	return out
}
