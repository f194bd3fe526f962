package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/autoservice-booking-api/internal/dto"
	internalmiddleware "github.com/noah-isme/autoservice-booking-api/internal/middleware"
	"github.com/noah-isme/autoservice-booking-api/internal/models"
	"github.com/noah-isme/autoservice-booking-api/internal/service"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
	"github.com/noah-isme/autoservice-booking-api/pkg/export"
	"github.com/noah-isme/autoservice-booking-api/pkg/response"
)

type schedulingEngine interface {
	SuggestDays(ctx context.Context, q service.SuggestDaysQuery) ([]models.DaySuggestion, bool, error)
	SlotsForDate(ctx context.Context, q service.SlotsForDateQuery) (*models.DaySuggestion, bool, error)
	Services() []models.ServiceProfile
	BusinessHours() []models.BusinessDay
}

// SchedulingHandler exposes the appointment suggestion endpoints.
type SchedulingHandler struct {
	engine    schedulingEngine
	validator *validator.Validate
}

// NewSchedulingHandler constructs the handler.
func NewSchedulingHandler(engine *service.SchedulingService, validate *validator.Validate) *SchedulingHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &SchedulingHandler{engine: engine, validator: validate}
}

// Suggestions godoc
// @Summary Suggest the best days and slots for a service
// @Description Ranks the open days of the horizon. Personalized when a customer bearer token is sent.
// @Tags Scheduling
// @Produce json
// @Param serviceId query string true "Service ID"
// @Param quantity query int false "Units of the service"
// @Param startDate query string false "First candidate date (YYYY-MM-DD), at least tomorrow"
// @Param horizonDays query int false "Days to consider"
// @Param maxSuggestions query int false "Slots kept per day"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /scheduling/suggestions [get]
func (h *SchedulingHandler) Suggestions(c *gin.Context) {
	var req dto.SuggestDaysRequest
	if !h.bind(c, &req) {
		return
	}
	req.CustomerID = internalmiddleware.CustomerID(c)
	query, err := suggestQuery(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	days, hit, err := h.engine.SuggestDays(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	internalmiddleware.SetCacheHit(c, hit)
	internalmiddleware.SetMeta(c, "count", len(days))
	response.JSON(c, http.StatusOK, dto.SuggestDaysResponse{
		ServiceID: req.ServiceID,
		Quantity:  query.Quantity,
		Days:      days,
	}, internalmiddleware.ExtractMeta(c))
}

// Slots godoc
// @Summary Ranked slots for one date
// @Tags Scheduling
// @Produce json
// @Param serviceId query string true "Service ID"
// @Param quantity query int false "Units of the service"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /scheduling/slots [get]
func (h *SchedulingHandler) Slots(c *gin.Context) {
	var req dto.SlotsForDateRequest
	if !h.bind(c, &req) {
		return
	}
	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date"))
		return
	}
	day, hit, err := h.engine.SlotsForDate(c.Request.Context(), service.SlotsForDateQuery{
		ServiceID:  req.ServiceID,
		Quantity:   quantityOrOne(req.Quantity),
		Date:       date,
		CustomerID: internalmiddleware.CustomerID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	internalmiddleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, day, internalmiddleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download suggestions as CSV or PDF
// @Tags Scheduling
// @Produce text/csv
// @Produce application/pdf
// @Param serviceId query string true "Service ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /scheduling/suggestions/export [get]
func (h *SchedulingHandler) Export(c *gin.Context) {
	var req dto.ExportSuggestionsRequest
	if !h.bind(c, &req) {
		return
	}
	format := export.FormatCSV
	if req.Format != "" {
		parsed, err := export.ParseFormat(req.Format)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export format"))
			return
		}
		format = parsed
	}
	req.CustomerID = internalmiddleware.CustomerID(c)
	query, err := suggestQuery(req.SuggestDaysRequest)
	if err != nil {
		response.Error(c, err)
		return
	}
	days, _, err := h.engine.SuggestDays(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	profile := h.profile(req.ServiceID, query.Quantity)
	body, err := export.RendererFor(format).Render(service.SuggestionSheet(profile, days))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
		return
	}
	filename := fmt.Sprintf("suggestions-%s.%s", req.ServiceID, format)
	response.Attachment(c, filename, format.ContentType(), body)
}

// Services godoc
// @Summary List bookable services
// @Tags Scheduling
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /services [get]
func (h *SchedulingHandler) Services(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.engine.Services())
}

// Hours godoc
// @Summary List the workshop opening hours
// @Description Open weekdays in Monday-first order with their lunch blackout. Weekday 1 is Monday.
// @Tags Scheduling
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduling/hours [get]
func (h *SchedulingHandler) Hours(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.engine.BusinessHours())
}

func (h *SchedulingHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return false
	}
	return true
}

func (h *SchedulingHandler) profile(serviceID string, quantity int) models.ServiceProfile {
	for _, p := range h.engine.Services() {
		if p.ServiceID == serviceID {
			p.Quantity = quantity
			return p
		}
	}
	return models.ServiceProfile{ServiceID: serviceID, Quantity: quantity}
}

func suggestQuery(req dto.SuggestDaysRequest) (service.SuggestDaysQuery, error) {
	query := service.SuggestDaysQuery{
		ServiceID:      req.ServiceID,
		Quantity:       quantityOrOne(req.Quantity),
		HorizonDays:    req.HorizonDays,
		CustomerID:     req.CustomerID,
		MaxSuggestions: req.MaxSuggestions,
	}
	if req.StartDate != "" {
		start, err := time.Parse(models.DateLayout, req.StartDate)
		if err != nil {
			return query, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid startDate")
		}
		query.StartDate = start
	}
	return query, nil
}

func quantityOrOne(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
