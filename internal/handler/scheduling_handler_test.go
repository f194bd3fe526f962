package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalmiddleware "github.com/noah-isme/autoservice-booking-api/internal/middleware"
	"github.com/noah-isme/autoservice-booking-api/internal/models"
	"github.com/noah-isme/autoservice-booking-api/internal/service"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

type schedulingEngineMock struct {
	suggestQuery service.SuggestDaysQuery
	slotsQuery   service.SlotsForDateQuery
	days         []models.DaySuggestion
	day          *models.DaySuggestion
	hit          bool
	err          error
}

func (m *schedulingEngineMock) SuggestDays(ctx context.Context, q service.SuggestDaysQuery) ([]models.DaySuggestion, bool, error) {
	m.suggestQuery = q
	return m.days, m.hit, m.err
}

func (m *schedulingEngineMock) SlotsForDate(ctx context.Context, q service.SlotsForDateQuery) (*models.DaySuggestion, bool, error) {
	m.slotsQuery = q
	return m.day, m.hit, m.err
}

func (m *schedulingEngineMock) Services() []models.ServiceProfile {
	return []models.ServiceProfile{{ServiceID: "svc-oil", Name: "Oil change", DurationMinutes: 45, PrepMinutes: 10, CleanupMinutes: 5}}
}

func (m *schedulingEngineMock) BusinessHours() []models.BusinessDay {
	lunchStart, lunchEnd := models.Clock(12, 30), models.Clock(13, 0)
	return []models.BusinessDay{
		{Weekday: models.Monday, Open: models.Clock(8, 0), Close: models.Clock(18, 0), LunchStart: &lunchStart, LunchEnd: &lunchEnd},
		{Weekday: models.Saturday, Open: models.Clock(9, 0), Close: models.Clock(13, 0)},
	}
}

func newSchedulingRouter(engine schedulingEngine, customerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &SchedulingHandler{engine: engine, validator: validator.New()}
	r := gin.New()
	r.Use(internalmiddleware.WithResponseMeta())
	if customerID != "" {
		r.Use(func(c *gin.Context) {
			c.Set(internalmiddleware.ContextCustomerKey, customerID)
			c.Next()
		})
	}
	r.GET("/scheduling/suggestions", h.Suggestions)
	r.GET("/scheduling/suggestions/export", h.Export)
	r.GET("/scheduling/slots", h.Slots)
	r.GET("/scheduling/hours", h.Hours)
	r.GET("/services", h.Services)
	return r
}

func sampleDay() models.DaySuggestion {
	return models.DaySuggestion{
		Date:        "2024-03-05",
		Weekday:     models.Tuesday,
		DayScore:    8,
		Recommended: true,
		Slots: []models.Candidate{{
			Date:      "2024-03-05",
			StartTime: models.Clock(8, 0),
			EndTime:   models.Clock(9, 0),
			Score:     8.5,
			BusyLevel: models.BusyLevelOptimal,
		}},
	}
}

func TestSuggestionsPassesQueryAndCustomer(t *testing.T) {
	engine := &schedulingEngineMock{days: []models.DaySuggestion{sampleDay()}, hit: true}
	r := newSchedulingRouter(engine, "cust-7")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scheduling/suggestions?serviceId=svc-oil&quantity=2&startDate=2024-03-04&maxSuggestions=3", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "svc-oil", engine.suggestQuery.ServiceID)
	assert.Equal(t, 2, engine.suggestQuery.Quantity)
	assert.Equal(t, 3, engine.suggestQuery.MaxSuggestions)
	assert.Equal(t, "cust-7", engine.suggestQuery.CustomerID)
	assert.Equal(t, "2024-03-04", engine.suggestQuery.StartDate.Format(models.DateLayout))

	var body struct {
		Data struct {
			Days []models.DaySuggestion `json:"days"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Days, 1)
	assert.Equal(t, models.Clock(8, 0), body.Data.Days[0].Slots[0].StartTime)
	assert.Equal(t, true, body.Meta["cacheHit"])
}

func TestSuggestionsDefaultsQuantity(t *testing.T) {
	engine := &schedulingEngineMock{}
	r := newSchedulingRouter(engine, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scheduling/suggestions?serviceId=svc-oil", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, engine.suggestQuery.Quantity)
	assert.Empty(t, engine.suggestQuery.CustomerID)
	assert.True(t, engine.suggestQuery.StartDate.IsZero())
}

func TestSuggestionsValidation(t *testing.T) {
	r := newSchedulingRouter(&schedulingEngineMock{}, "")

	for _, target := range []string{
		"/scheduling/suggestions",
		"/scheduling/suggestions?serviceId=svc-oil&startDate=05-03-2024",
		"/scheduling/suggestions?serviceId=svc-oil&quantity=abc",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestSuggestionsMapsServiceErrors(t *testing.T) {
	engine := &schedulingEngineMock{err: appErrors.Clone(appErrors.ErrUnknownService, "unknown service svc-x")}
	r := newSchedulingRouter(engine, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scheduling/suggestions?serviceId=svc-x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_SERVICE")
}

func TestSlotsOutOfRange(t *testing.T) {
	engine := &schedulingEngineMock{err: appErrors.ErrDateOutOfRange}
	r := newSchedulingRouter(engine, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scheduling/slots?serviceId=svc-oil&date=2020-01-01", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "2020-01-01", engine.slotsQuery.Date.Format(models.DateLayout))
}

func TestSlotsSuccess(t *testing.T) {
	day := sampleDay()
	engine := &schedulingEngineMock{day: &day}
	r := newSchedulingRouter(engine, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scheduling/slots?serviceId=svc-oil&date=2024-03-05", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"startTime":"08:00"`)
}

func TestExportCSV(t *testing.T) {
	engine := &schedulingEngineMock{days: []models.DaySuggestion{sampleDay()}}
	r := newSchedulingRouter(engine, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scheduling/suggestions/export?serviceId=svc-oil&format=csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "suggestions-svc-oil.csv")
	assert.Contains(t, w.Body.String(), "2024-03-05,Tuesday,8.0,true,08:00,09:00,8.5,OPTIMAL")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	r := newSchedulingRouter(&schedulingEngineMock{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scheduling/suggestions/export?serviceId=svc-oil&format=xlsx", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServicesList(t *testing.T) {
	r := newSchedulingRouter(&schedulingEngineMock{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"serviceId":"svc-oil"`)
}

func TestBusinessHoursList(t *testing.T) {
	r := newSchedulingRouter(&schedulingEngineMock{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scheduling/hours", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `{"weekday":1,"open":"08:00","close":"18:00","lunchStart":"12:30","lunchEnd":"13:00"}`)
	assert.Contains(t, body, `{"weekday":6,"open":"09:00","close":"13:00"}`)
}
