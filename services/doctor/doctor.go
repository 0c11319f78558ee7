package doctor

import (
	"context"
	"fmt"
	"strings"

	doctorRepo "clinicportal/database/repository/doctor"
	serviceRepo "clinicportal/database/repository/service"
	"clinicportal/models"
)

// DoctorService manages the clinic roster. All operations are admin gated
// by the routing layer.
type DoctorService interface {
	AddDoctor(ctx context.Context, doctor models.Doctor) (*models.Doctor, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	RemoveDoctor(ctx context.Context, id string) error
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo     doctorRepo.DoctorRepository
	Services serviceRepo.ServiceOptionRepository
}

func (s *DefaultDoctorService) AddDoctor(ctx context.Context, doctor models.Doctor) (*models.Doctor, error) {
	if strings.TrimSpace(doctor.Name) == "" || strings.TrimSpace(doctor.Email) == "" {
		return nil, fmt.Errorf("doctor name and email are required")
	}

	// A roster entry must point at a real appointment option.
	if doctor.Specialty != "" {
		opt, err := s.Services.GetByName(ctx, doctor.Specialty)
		if err != nil {
			return nil, fmt.Errorf("roster: %w", err)
		}
		if opt == nil {
			return nil, fmt.Errorf("unknown specialty %q", doctor.Specialty)
		}
	}

	if err := s.Repo.Create(ctx, &doctor); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	return &doctor, nil
}

func (s *DefaultDoctorService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	return doctors, nil
}

func (s *DefaultDoctorService) RemoveDoctor(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	return nil
}
