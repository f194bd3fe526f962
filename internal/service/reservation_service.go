package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/autoservice-booking-api/internal/dto"
	"github.com/noah-isme/autoservice-booking-api/internal/models"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

// MaxReferenceAttempts bounds booking reference generation.
const MaxReferenceAttempts = 5

type reservationRepository interface {
	// CreateIfAvailable re-reads the reservations of res.Date under a lock,
	// rejects with ErrSlotUnavailable when conflicts reports a collision, and
	// inserts otherwise.
	CreateIfAvailable(ctx context.Context, res *models.Reservation, conflicts func(existing []models.Reservation) bool) error
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error
}

// ReservationService commits and cancels reservations. It is the write path
// that closes the gap between offering a slot and booking it.
type ReservationService struct {
	repo        reservationRepository
	scheduling  *SchedulingService
	invalidator *CacheInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
	location    *time.Location
	newCode     func() string
}

// NewReservationService wires the commit path.
func NewReservationService(repo reservationRepository, scheduling *SchedulingService, invalidator *CacheInvalidator, validate *validator.Validate, logger *zap.Logger) *ReservationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		repo:        repo,
		scheduling:  scheduling,
		invalidator: invalidator,
		validator:   validate,
		logger:      logger,
		location:    scheduling.location,
		newCode:     newReferenceCode,
	}
}

// Create books the requested slot after re-validating it against the live
// reservation table.
func (s *ReservationService) Create(ctx context.Context, req dto.CreateReservationRequest) (*models.Reservation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reservation payload")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	profile, err := s.scheduling.Catalog().ProfileFor(req.ServiceID, req.Quantity)
	if err != nil {
		return nil, err
	}
	date, err := time.ParseInLocation(models.DateLayout, req.Date, s.location)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	if err := s.scheduling.CheckBookable(date); err != nil {
		return nil, err
	}
	start, err := models.ParseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
	}
	if !s.scheduling.OffersStart(date, profile, start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s on %s is outside bookable hours", start, req.Date))
	}

	reference, err := s.uniqueReference(ctx)
	if err != nil {
		return nil, err
	}
	res := &models.Reservation{
		ID:         uuid.NewString(),
		Reference:  reference,
		CustomerID: req.CustomerID,
		ServiceID:  profile.ServiceID,
		Quantity:   profile.Quantity,
		Date:       date,
		StartTime:  start,
		EndTime:    start.Add(profile.TotalMinutes()),
		Value:      req.Value,
		Status:     models.ReservationStatusConfirmed,
	}
	err = s.repo.CreateIfAvailable(ctx, res, func(existing []models.Reservation) bool {
		return s.scheduling.Conflicts(res.StartTime, res.EndTime, existing)
	})
	if err != nil {
		if errors.Is(err, appErrors.ErrSlotUnavailable) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrCollaboratorUnavailable.Code, appErrors.ErrCollaboratorUnavailable.Status, "failed to store reservation")
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", res.ID),
		zap.String("reference", res.Reference),
		zap.String("service_id", res.ServiceID),
		zap.String("date", req.Date),
		zap.String("start", res.StartTime.String()))
	s.invalidator.ReservationChanged(ctx, date, res.CustomerID)
	return res, nil
}

// Cancel releases a reservation so its slot can be offered again. A
// reservation held by a customer can only be cancelled by that customer;
// anyone else gets the same not-found answer as for an unknown id.
func (s *ReservationService) Cancel(ctx context.Context, id, customerID string) (*models.Reservation, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "reservation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reservation")
	}
	if res.CustomerID != "" && res.CustomerID != customerID {
		s.logger.Info("cancel refused for non-owner", zap.String("reservation_id", id))
		return nil, appErrors.Clone(appErrors.ErrNotFound, "reservation not found")
	}
	if res.Status == models.ReservationStatusCancelled {
		return res, nil
	}
	if err := s.repo.UpdateStatus(ctx, id, models.ReservationStatusCancelled); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel reservation")
	}
	res.Status = models.ReservationStatusCancelled
	s.invalidator.ReservationChanged(ctx, res.Date, res.CustomerID)
	return res, nil
}

// uniqueReference draws booking codes until one is unused, giving up after
// MaxReferenceAttempts.
func (s *ReservationService) uniqueReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < MaxReferenceAttempts; attempt++ {
		code := s.newCode()
		exists, err := s.repo.ReferenceExists(ctx, code)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check reference")
		}
		if !exists {
			return code, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrExhaustedRetries, fmt.Sprintf("no unique booking reference after %d attempts", MaxReferenceAttempts))
}

func newReferenceCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "SV-" + strings.ToUpper(raw[:8])
}
