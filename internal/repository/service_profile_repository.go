package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
)

// ServiceProfileRepository reads the workshop service catalog.
type ServiceProfileRepository struct {
	db *sqlx.DB
}

// NewServiceProfileRepository constructs the repository.
func NewServiceProfileRepository(db *sqlx.DB) *ServiceProfileRepository {
	return &ServiceProfileRepository{db: db}
}

// List returns every active service profile.
func (r *ServiceProfileRepository) List(ctx context.Context) ([]models.ServiceProfile, error) {
	const query = `
SELECT service_id, name, duration_minutes, prep_minutes, cleanup_minutes, quantity_scaling
FROM service_profiles
WHERE active = TRUE
ORDER BY service_id ASC`
	var profiles []models.ServiceProfile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("list service profiles: %w", err)
	}
	return profiles, nil
}
