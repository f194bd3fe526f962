package models

import "time"

// ReservationStatus tracks the lifecycle of a booking.
type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation is a committed appointment.
type Reservation struct {
	ID         string            `db:"id" json:"id"`
	Reference  string            `db:"reference" json:"reference"`
	CustomerID string            `db:"customer_id" json:"customerId"`
	ServiceID  string            `db:"service_id" json:"serviceId"`
	Quantity   int               `db:"quantity" json:"quantity"`
	Date       time.Time         `db:"date" json:"date"`
	StartTime  ClockTime         `db:"start_time" json:"startTime"`
	EndTime    ClockTime         `db:"end_time" json:"endTime"`
	Value      float64           `db:"value" json:"value"`
	Status     ReservationStatus `db:"status" json:"status"`
	CreatedAt  time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time         `db:"updated_at" json:"updatedAt"`
}

// HistoricalReservation is one row of the demand history window.
type HistoricalReservation struct {
	Date      time.Time `db:"date" json:"date"`
	StartTime ClockTime `db:"start_time" json:"startTime"`
	ServiceID string    `db:"service_id" json:"serviceId"`
	Value     float64   `db:"value" json:"value"`
	Succeeded bool      `db:"succeeded" json:"succeeded"`
}
