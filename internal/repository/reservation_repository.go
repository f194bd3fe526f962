package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

const reservationColumns = `id, reference, customer_id, service_id, quantity, date, start_time, end_time, value, status, created_at, updated_at`

// customerHistoryLimit caps how many past bookings feed a preference profile.
const customerHistoryLimit = 200

// ReservationRepository persists workshop reservations.
type ReservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository constructs the repository.
func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ReservationsOn returns the active reservations of a calendar date.
func (r *ReservationRepository) ReservationsOn(ctx context.Context, date time.Time) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE date = $1 AND status <> $2 ORDER BY start_time ASC`
	var rows []models.Reservation
	if err := r.db.SelectContext(ctx, &rows, query, date.Format(models.DateLayout), models.ReservationStatusCancelled); err != nil {
		return nil, fmt.Errorf("list reservations on %s: %w", date.Format(models.DateLayout), err)
	}
	return rows, nil
}

// ReservationsSince returns the demand history from windowStart onwards.
// Completed and confirmed bookings count as succeeded.
func (r *ReservationRepository) ReservationsSince(ctx context.Context, windowStart time.Time) ([]models.HistoricalReservation, error) {
	const query = `
SELECT date, start_time, service_id, value, status <> 'CANCELLED' AS succeeded
FROM reservations
WHERE date >= $1
ORDER BY date ASC, start_time ASC`
	var rows []models.HistoricalReservation
	if err := r.db.SelectContext(ctx, &rows, query, windowStart.Format(models.DateLayout)); err != nil {
		return nil, fmt.Errorf("list reservation history: %w", err)
	}
	return rows, nil
}

// ReservationsFor returns the most recent bookings of a customer.
func (r *ReservationRepository) ReservationsFor(ctx context.Context, customerID string) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE customer_id = $1 ORDER BY date DESC, start_time DESC LIMIT $2`
	var rows []models.Reservation
	if err := r.db.SelectContext(ctx, &rows, query, customerID, customerHistoryLimit); err != nil {
		return nil, fmt.Errorf("list reservations for customer: %w", err)
	}
	return rows, nil
}

// CreateIfAvailable inserts res unless conflicts reports a collision with the
// reservations already stored for the same date. A transaction-scoped advisory
// lock on the date serialises concurrent commits for that day.
func (r *ReservationRepository) CreateIfAvailable(ctx context.Context, res *models.Reservation, conflicts func([]models.Reservation) bool) (err error) {
	day := res.Date.Format(models.DateLayout)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reservation tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "reservations:"+day); err != nil {
		return fmt.Errorf("lock reservation day: %w", err)
	}

	var existing []models.Reservation
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE date = $1 AND status <> $2 ORDER BY start_time ASC FOR UPDATE`
	if err = tx.SelectContext(ctx, &existing, query, day, models.ReservationStatusCancelled); err != nil {
		return fmt.Errorf("reload reservations on %s: %w", day, err)
	}
	if conflicts(existing) {
		err = appErrors.Clone(appErrors.ErrSlotUnavailable, fmt.Sprintf("%s on %s was taken in the meantime", res.StartTime, day))
		return err
	}

	now := time.Now().UTC()
	res.CreatedAt = now
	res.UpdatedAt = now
	const insert = `
INSERT INTO reservations (id, reference, customer_id, service_id, quantity, date, start_time, end_time, value, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	if _, err = tx.ExecContext(ctx, insert,
		res.ID, res.Reference, res.CustomerID, res.ServiceID, res.Quantity, day,
		res.StartTime, res.EndTime, res.Value, res.Status, res.CreatedAt, res.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit reservation: %w", err)
	}
	return nil
}

// ReferenceExists reports whether a booking reference is already taken.
func (r *ReservationRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM reservations WHERE reference = $1)`, reference); err != nil {
		return false, fmt.Errorf("check reservation reference: %w", err)
	}
	return exists, nil
}

// FindByID loads a reservation. Missing rows surface as sql.ErrNoRows.
func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.GetContext(ctx, &res, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return &res, nil
}

// UpdateStatus moves a reservation to a new lifecycle status.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
