package services

import (
	"MediCitas/models"
	"MediCitas/repositories"
	"MediCitas/utils"
	"context"
)

// DoctorService covers doctor management and the soft-delete lifecycle.
type DoctorService interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	Update(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	GetAll(ctx context.Context, includeInactive bool) ([]models.Doctor, error)
	Deactivate(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
}

type doctorService struct {
	doctors repositories.DoctorRepository
}

func NewDoctorService(doctors repositories.DoctorRepository) DoctorService {
	return &doctorService{doctors: doctors}
}

func (s *doctorService) Create(ctx context.Context, doctor *models.Doctor) error {
	if doctor.SlotMinutes == 0 {
		doctor.SlotMinutes = 30
	}
	if err := utils.ValidateDoctor(*doctor); err != nil {
		return err
	}
	return s.doctors.Create(ctx, doctor)
}

func (s *doctorService) Update(ctx context.Context, doctor *models.Doctor) error {
	existing, err := s.doctors.GetByID(ctx, doctor.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := utils.ValidateDoctor(*doctor); err != nil {
		return err
	}
	doctor.Active = existing.Active
	return s.doctors.Update(ctx, doctor)
}

func (s *doctorService) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNotFound
	}
	return doctor, nil
}

func (s *doctorService) GetAll(ctx context.Context, includeInactive bool) ([]models.Doctor, error) {
	return s.doctors.GetAll(ctx, includeInactive)
}

// Deactivate trashes the doctor. Existing appointments keep their own
// lifecycle; only booking new slots is blocked by the scheduler.
func (s *doctorService) Deactivate(ctx context.Context, id uint) error {
	found, err := s.doctors.SetActive(ctx, id, false)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *doctorService) Restore(ctx context.Context, id uint) error {
	found, err := s.doctors.SetActive(ctx, id, true)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
