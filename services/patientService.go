package services

import (
	"MediCitas/models"
	"MediCitas/repositories"
	"MediCitas/utils"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrPatientExists is returned when an explicit admin creation reuses a
// national id that already belongs to a patient row.
var ErrPatientExists = errors.New("a patient with this national id already exists")

// PatientService covers patient lookups and the soft-delete lifecycle.
// Deactivation cascades to the patient's appointments; restore does not
// bring them back.
type PatientService interface {
	Search(ctx context.Context, prefix string) ([]models.Patient, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.Patient, error)
	GetAll(ctx context.Context, includeInactive bool) ([]models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, patient *models.Patient) error
	Deactivate(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
}

type patientService struct {
	tx           repositories.TxManager
	patients     repositories.PatientRepository
	appointments repositories.AppointmentRepository
}

func NewPatientService(
	tx repositories.TxManager,
	patients repositories.PatientRepository,
	appointments repositories.AppointmentRepository,
) PatientService {
	return &patientService{tx: tx, patients: patients, appointments: appointments}
}

func (s *patientService) Search(ctx context.Context, prefix string) ([]models.Patient, error) {
	if prefix == "" {
		return []models.Patient{}, nil
	}
	return s.patients.SearchByPrefix(ctx, prefix)
}

func (s *patientService) GetByNationalID(ctx context.Context, nationalID string) (*models.Patient, error) {
	patient, err := s.patients.GetByNationalID(ctx, nil, nationalID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}
	return patient, nil
}

func (s *patientService) GetAll(ctx context.Context, includeInactive bool) ([]models.Patient, error) {
	return s.patients.GetAll(ctx, includeInactive)
}

// Create handles explicit creation from the back office. Bookings go
// through the scheduler's resolver instead.
func (s *patientService) Create(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidateNationalID(patient.NationalID); err != nil {
		return ErrInvalidNationalID
	}
	if patient.Phone != "" {
		if err := utils.ValidatePhone(patient.Phone); err != nil {
			return ErrInvalidPhone
		}
	}

	existing, err := s.patients.GetByNationalID(ctx, nil, patient.NationalID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrPatientExists
	}

	patient.Active = true
	if patient.Allergies == "" {
		patient.Allergies = models.DefaultAllergies
	}
	if patient.Surgeries == "" {
		patient.Surgeries = models.DefaultSurgeries
	}
	return s.patients.Save(ctx, nil, patient)
}

func (s *patientService) Update(ctx context.Context, patient *models.Patient) error {
	existing, err := s.patients.GetByID(ctx, patient.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if patient.Phone != "" {
		if err := utils.ValidatePhone(patient.Phone); err != nil {
			return ErrInvalidPhone
		}
	}
	patient.NationalID = existing.NationalID
	patient.Active = existing.Active
	return s.patients.Save(ctx, nil, patient)
}

// Deactivate trashes the patient and every active appointment referencing
// them, in one transaction. Deactivating an already-inactive patient is a
// no-op success.
func (s *patientService) Deactivate(ctx context.Context, id uint) error {
	return s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		found, err := s.patients.SetActive(ctx, tx, id, false)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return s.appointments.DeactivateForPatient(ctx, tx, id)
	})
}

// Restore revives the patient only. Appointments trashed by the cascade
// stay trashed and must be restored individually.
func (s *patientService) Restore(ctx context.Context, id uint) error {
	found, err := s.patients.SetActive(ctx, nil, id, true)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
