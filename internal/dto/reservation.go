package dto

// CreateReservationRequest commits a slot previously offered by the scheduler.
// A bearer token's customer overrides CustomerID.
type CreateReservationRequest struct {
	CustomerID string  `json:"customerId" validate:"required,max=64"`
	ServiceID  string  `json:"serviceId" validate:"required"`
	Quantity   int     `json:"quantity" validate:"omitempty,min=1,max=50"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string  `json:"startTime" validate:"required,datetime=15:04"`
	Value      float64 `json:"value" validate:"min=0"`
}
