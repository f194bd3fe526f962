package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

type serviceProfileLister interface {
	List(ctx context.Context) ([]models.ServiceProfile, error)
}

// ServiceCatalog maps service identifiers to their time profiles.
type ServiceCatalog struct {
	profiles   map[string]models.ServiceProfile
	minMinutes int
}

// NewServiceCatalog indexes profiles. minMinutes is the duration assumed for
// reservations whose service is not in the catalog.
func NewServiceCatalog(profiles []models.ServiceProfile, minMinutes int) (*ServiceCatalog, error) {
	if minMinutes <= 0 {
		minMinutes = 60
	}
	index := make(map[string]models.ServiceProfile, len(profiles))
	for _, profile := range profiles {
		if profile.ServiceID == "" {
			return nil, fmt.Errorf("service profile without id")
		}
		if profile.DurationMinutes < 0 || profile.PrepMinutes < 0 || profile.CleanupMinutes < 0 {
			return nil, fmt.Errorf("service %s: negative minutes", profile.ServiceID)
		}
		profile.Quantity = 1
		if profile.TotalMinutes() <= 0 {
			return nil, fmt.Errorf("service %s: total minutes must be positive", profile.ServiceID)
		}
		index[profile.ServiceID] = profile
	}
	return &ServiceCatalog{profiles: index, minMinutes: minMinutes}, nil
}

// LoadServiceCatalog builds the catalog from the service_profiles store.
func LoadServiceCatalog(ctx context.Context, lister serviceProfileLister, minMinutes int) (*ServiceCatalog, error) {
	profiles, err := lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load service profiles: %w", err)
	}
	return NewServiceCatalog(profiles, minMinutes)
}

// ProfileFor resolves serviceID for the given quantity. Quantity is ignored
// for services whose duration does not scale.
func (c *ServiceCatalog) ProfileFor(serviceID string, quantity int) (models.ServiceProfile, error) {
	profile, ok := c.profiles[serviceID]
	if !ok {
		return models.ServiceProfile{}, appErrors.Clone(appErrors.ErrUnknownService, fmt.Sprintf("unknown service %q", serviceID))
	}
	if quantity < 1 {
		return models.ServiceProfile{}, appErrors.Clone(appErrors.ErrValidation, "quantity must be a positive integer")
	}
	if profile.QuantityScaling {
		profile.Quantity = quantity
	}
	return profile, nil
}

// EstimateMinutes returns the bay time of an existing reservation, falling
// back to the configured minimum for services no longer in the catalog.
func (c *ServiceCatalog) EstimateMinutes(serviceID string, quantity int) int {
	if quantity < 1 {
		quantity = 1
	}
	profile, err := c.ProfileFor(serviceID, quantity)
	if err != nil {
		return c.minMinutes
	}
	return profile.TotalMinutes()
}

// List returns all profiles ordered by id.
func (c *ServiceCatalog) List() []models.ServiceProfile {
	out := make([]models.ServiceProfile, 0, len(c.profiles))
	for _, profile := range c.profiles {
		out = append(out, profile)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceID < out[j].ServiceID })
	return out
}
