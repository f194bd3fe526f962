package dto

import "github.com/noah-isme/autoservice-booking-api/internal/models"

// SuggestDaysRequest is the query of the day-suggestion endpoint. The customer
// comes from the bearer token, never from the query string.
type SuggestDaysRequest struct {
	ServiceID      string `form:"serviceId" validate:"required"`
	Quantity       int    `form:"quantity" validate:"omitempty,min=1,max=50"`
	StartDate      string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	HorizonDays    int    `form:"horizonDays" validate:"omitempty,min=1,max=90"`
	MaxSuggestions int    `form:"maxSuggestions" validate:"omitempty,min=1,max=100"`
	CustomerID     string `form:"-"`
}

// ExportSuggestionsRequest renders the suggestions as a downloadable sheet.
type ExportSuggestionsRequest struct {
	SuggestDaysRequest
	Format string `form:"format" validate:"omitempty,oneof=csv pdf CSV PDF"`
}

// SlotsForDateRequest is the query of the single-date endpoint.
type SlotsForDateRequest struct {
	ServiceID  string `form:"serviceId" validate:"required"`
	Quantity   int    `form:"quantity" validate:"omitempty,min=1,max=50"`
	Date       string `form:"date" validate:"required,datetime=2006-01-02"`
	CustomerID string `form:"-"`
}

// SuggestDaysResponse wraps ranked days.
type SuggestDaysResponse struct {
	ServiceID string                 `json:"serviceId"`
	Quantity  int                    `json:"quantity"`
	Days      []models.DaySuggestion `json:"days"`
}
