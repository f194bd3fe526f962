package models

// ServiceProfile describes how long a workshop service occupies a bay.
type ServiceProfile struct {
	ServiceID       string `db:"service_id" json:"serviceId"`
	Name            string `db:"name" json:"name"`
	DurationMinutes int    `db:"duration_minutes" json:"durationMinutes"`
	PrepMinutes     int    `db:"prep_minutes" json:"prepMinutes"`
	CleanupMinutes  int    `db:"cleanup_minutes" json:"cleanupMinutes"`
	QuantityScaling bool   `db:"quantity_scaling" json:"quantityScaling"`
	Quantity        int    `db:"-" json:"quantity"`
}

// TotalMinutes is duration (times quantity when scaling) plus prep and cleanup.
func (p ServiceProfile) TotalMinutes() int {
	duration := p.DurationMinutes
	if p.QuantityScaling && p.Quantity > 1 {
		duration *= p.Quantity
	}
	return duration + p.PrepMinutes + p.CleanupMinutes
}
