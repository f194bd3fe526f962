package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
)

func TestParseBusinessHours(t *testing.T) {
	days, err := ParseBusinessHours(" mon=08:00-18:00@12:30-13:00 ; SAT=09:00-13:00;")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, models.Monday, days[0].Weekday)
	assert.Equal(t, models.Clock(8, 0), days[0].Open)
	require.True(t, days[0].HasLunch())
	assert.Equal(t, models.Clock(12, 30), *days[0].LunchStart)
	assert.Equal(t, models.Saturday, days[1].Weekday)
	assert.False(t, days[1].HasLunch())
}

func TestParseBusinessHoursErrors(t *testing.T) {
	for _, raw := range []string{
		"mon 08:00-18:00",
		"xyz=08:00-18:00",
		"mon=0800-1800",
		"mon=08:00-18:00@12:30",
	} {
		_, err := ParseBusinessHours(raw)
		assert.Error(t, err, raw)
	}
}

func TestNewBusinessCalendarValidates(t *testing.T) {
	lunch := models.Clock(7, 0)
	lunchEnd := models.Clock(7, 30)
	_, err := NewBusinessCalendar([]models.BusinessDay{{Weekday: models.Monday, Open: models.Clock(8, 0), Close: models.Clock(18, 0), LunchStart: &lunch, LunchEnd: &lunchEnd}})
	assert.Error(t, err)

	_, err = NewBusinessCalendar([]models.BusinessDay{{Weekday: models.Monday, Open: models.Clock(18, 0), Close: models.Clock(8, 0)}})
	assert.Error(t, err)

	_, err = NewBusinessCalendar([]models.BusinessDay{
		{Weekday: models.Monday, Open: models.Clock(8, 0), Close: models.Clock(18, 0)},
		{Weekday: models.Monday, Open: models.Clock(9, 0), Close: models.Clock(17, 0)},
	})
	assert.Error(t, err)
}

func TestCalendarLookups(t *testing.T) {
	calendar := testCalendar(t)

	_, open := calendar.HoursOn(day(3, 10))
	assert.False(t, open)
	assert.Equal(t, []models.Weekday{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday, models.Saturday}, calendar.OpenWeekdays())
	assert.Equal(t, []int{9, 10, 11, 12}, calendar.OpenHours(models.Saturday))
	assert.Len(t, calendar.OpenHours(models.Monday), 10)
	assert.Nil(t, calendar.OpenHours(models.Sunday))
	assert.Len(t, calendar.Days(), 6)
}
