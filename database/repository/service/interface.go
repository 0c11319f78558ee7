package serviceRepo

import (
	"context"

	"clinicportal/models"
)

// ServiceOptionRepository defines data access for appointment options.
type ServiceOptionRepository interface {
	// GetAll retrieves every appointment option with its full slot template.
	GetAll(ctx context.Context) ([]models.ServiceOption, error)
	// GetNames retrieves the name-only projection of every option.
	GetNames(ctx context.Context) ([]models.SpecialtyRef, error)
	// GetByName retrieves a single option by its unique name.
	GetByName(ctx context.Context, name string) (*models.ServiceOption, error)
	// Create inserts a new appointment option.
	Create(ctx context.Context, option *models.ServiceOption) error
}
