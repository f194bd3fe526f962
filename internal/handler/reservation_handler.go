package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/autoservice-booking-api/internal/dto"
	internalmiddleware "github.com/noah-isme/autoservice-booking-api/internal/middleware"
	"github.com/noah-isme/autoservice-booking-api/internal/models"
	"github.com/noah-isme/autoservice-booking-api/internal/service"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
	"github.com/noah-isme/autoservice-booking-api/pkg/response"
)

type reservationCommitter interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (*models.Reservation, error)
	Cancel(ctx context.Context, id, customerID string) (*models.Reservation, error)
}

// ReservationHandler commits and cancels bookings.
type ReservationHandler struct {
	service reservationCommitter
}

// NewReservationHandler constructs the handler.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: svc}
}

// Create godoc
// @Summary Book a suggested slot
// @Description The slot is re-checked against committed reservations; a slot taken in the meantime yields 409.
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body dto.CreateReservationRequest true "Reservation payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reservation payload"))
		return
	}
	if customerID := internalmiddleware.CustomerID(c); customerID != "" {
		req.CustomerID = customerID
	}
	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Cancel godoc
// @Summary Cancel a reservation
// @Description Reservations held by a customer require that customer's bearer token.
// @Tags Reservations
// @Produce json
// @Security CustomerToken
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	res, err := h.service.Cancel(c.Request.Context(), c.Param("id"), internalmiddleware.CustomerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
