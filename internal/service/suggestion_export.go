package service

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
	"github.com/noah-isme/autoservice-booking-api/pkg/export"
)

var suggestionColumns = []export.Column{
	{Key: "rank", Title: "Rank", Width: 0.6},
	{Key: "date", Title: "Date", Width: 1.2},
	{Key: "weekday", Title: "Day", Width: 0.8},
	{Key: "dayScore", Title: "Day score", Width: 0.9},
	{Key: "recommended", Title: "Recommended", Width: 1},
	{Key: "start", Title: "Start", Width: 0.7},
	{Key: "end", Title: "End", Width: 0.7},
	{Key: "score", Title: "Score", Width: 0.7},
	{Key: "busy", Title: "Busy", Width: 0.8},
	{Key: "match", Title: "Customer match %", Width: 1.2},
	{Key: "efficiency", Title: "Efficiency %", Width: 1},
	{Key: "note", Title: "Recommendation", Width: 2.6},
}

// SuggestionSheet flattens ranked days into one export row per slot, in rank
// order.
func SuggestionSheet(profile models.ServiceProfile, days []models.DaySuggestion) export.Dataset {
	rows := make([]map[string]string, 0, len(days)*4)
	for i, day := range days {
		for _, slot := range day.Slots {
			rows = append(rows, map[string]string{
				"rank":        strconv.Itoa(i + 1),
				"date":        day.Date,
				"weekday":     day.Weekday.String(),
				"dayScore":    strconv.FormatFloat(day.DayScore, 'f', 1, 64),
				"recommended": strconv.FormatBool(day.Recommended),
				"start":       slot.StartTime.String(),
				"end":         slot.EndTime.String(),
				"score":       strconv.FormatFloat(slot.Score, 'f', 1, 64),
				"busy":        string(slot.BusyLevel),
				"match":       strconv.Itoa(slot.CustomerMatchPercent),
				"efficiency":  strconv.Itoa(slot.EfficiencyPercent),
				"note":        slot.Recommendation,
			})
		}
	}
	name := profile.Name
	if name == "" {
		name = profile.ServiceID
	}
	return export.Dataset{
		Title:    "Suggested appointments: " + name,
		Subtitle: fmt.Sprintf("Quantity %d, %d minutes per booking, %d days", profile.Quantity, profile.TotalMinutes(), len(days)),
		Columns:  suggestionColumns,
		Rows:     rows,
	}
}
