package services

import (
	"MediCitas/models"
	"MediCitas/repositories"
	"MediCitas/utils"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Typed booking rejections. Handlers map these to 400/404 responses; any
// other error is a storage failure.
var (
	ErrInvalidPhone      = errors.New("phone must be exactly 8 digits and start with 6 or 7")
	ErrInvalidNationalID = errors.New("national id must be 5 to 10 digits")
	ErrInvalidInterval   = errors.New("invalid appointment interval")
	ErrSlotOccupied      = errors.New("the requested slot is already occupied")
	ErrNotFound          = errors.New("record not found")
)

// Success messages returned with the persisted appointment.
const (
	MsgAppointmentCreated = "Appointment scheduled successfully"
	MsgAppointmentUpdated = "Appointment updated successfully"
)

// Locker serializes bookings per doctor. The redis-backed implementation
// lives in the database package; tests substitute a no-op.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// BookingRequest carries one booking or edit submission. AppointmentID
// zero means create; non-zero means edit that appointment. End is always
// caller-supplied, never derived from the doctor's slot duration.
type BookingRequest struct {
	AppointmentID uint   `json:"appointment_id"`
	DoctorID      uint   `json:"doctor_id"`
	Start         string `json:"start"`
	End           string `json:"end"`
	NationalID    string `json:"national_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Motive        string `json:"motive"`
	Allergies     string `json:"allergies"`
	Surgeries     string `json:"surgeries"`
	Notes         string `json:"notes"`
}

// Scheduler is the single authoritative entry point for booking. It owns
// validation, the overlap check, patient resolution, and the
// create-or-update of the appointment row.
type Scheduler interface {
	Schedule(ctx context.Context, req BookingRequest) (*models.Appointment, string, error)
}

type schedulingService struct {
	tx           repositories.TxManager
	locker       Locker
	doctors      repositories.DoctorRepository
	patients     repositories.PatientRepository
	appointments repositories.AppointmentRepository
}

func NewSchedulingService(
	tx repositories.TxManager,
	locker Locker,
	doctors repositories.DoctorRepository,
	patients repositories.PatientRepository,
	appointments repositories.AppointmentRepository,
) Scheduler {
	return &schedulingService{
		tx:           tx,
		locker:       locker,
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
	}
}

// Schedule validates and persists a booking. Validation is fail-fast:
// phone format, national-id format, interval, then the overlap check.
// The overlap check and both writes run under a per-doctor lock inside a
// single transaction, so concurrent requests cannot double-book a slot
// and a failed appointment write cannot leave a half-committed booking.
func (s *schedulingService) Schedule(ctx context.Context, req BookingRequest) (*models.Appointment, string, error) {
	if err := utils.ValidatePhone(req.Phone); err != nil {
		return nil, "", ErrInvalidPhone
	}
	if err := utils.ValidateNationalID(req.NationalID); err != nil {
		return nil, "", ErrInvalidNationalID
	}

	start, err := utils.ParseAppointmentTime(req.Start)
	if err != nil {
		return nil, "", ErrInvalidInterval
	}
	end, err := utils.ParseAppointmentTime(req.End)
	if err != nil {
		return nil, "", ErrInvalidInterval
	}
	if !start.Before(end) {
		return nil, "", ErrInvalidInterval
	}

	doctor, err := s.doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, "", err
	}
	if doctor == nil || !doctor.Active {
		return nil, "", ErrNotFound
	}

	release, err := s.locker.Acquire(ctx, fmt.Sprintf("booking_lock:doctor:%d", req.DoctorID))
	if err != nil {
		return nil, "", err
	}
	defer release()

	var appointment *models.Appointment
	var message string

	err = s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		if req.AppointmentID != 0 {
			appointment, err = s.appointments.GetByID(ctx, req.AppointmentID)
			if err != nil {
				return err
			}
			if appointment == nil {
				return ErrNotFound
			}
		}

		conflict, err := s.appointments.HasConflict(ctx, tx, req.DoctorID, start, end, req.AppointmentID)
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotOccupied
		}

		patient, err := s.resolvePatient(ctx, tx, req)
		if err != nil {
			return err
		}

		if appointment != nil {
			// Edit mode: interval, motive and the patient link change; the
			// doctor stays as booked. The re-link matters even when the
			// national id is unchanged, because the resolver may have
			// returned a different row than the one previously linked.
			appointment.StartsAt = start
			appointment.EndsAt = end
			appointment.Motive = req.Motive
			appointment.PatientID = patient.ID
			appointment.Patient = *patient
			if err := s.appointments.Update(ctx, tx, appointment); err != nil {
				return err
			}
			message = MsgAppointmentUpdated
			return nil
		}

		appointment = &models.Appointment{
			DoctorID:  req.DoctorID,
			PatientID: patient.ID,
			StartsAt:  start,
			EndsAt:    end,
			Motive:    req.Motive,
			Active:    true,
			Patient:   *patient,
		}
		if err := s.appointments.Create(ctx, tx, appointment); err != nil {
			return err
		}
		message = MsgAppointmentCreated
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return appointment, message, nil
}

// resolvePatient finds-or-creates the patient row for the booking's
// national id. An existing row, active or trashed, is overwritten with the
// submitted demographics (last write wins) and reactivated; an unseen id
// becomes a fresh active row with documented defaults for omitted medical
// fields.
func (s *schedulingService) resolvePatient(ctx context.Context, tx *gorm.DB, req BookingRequest) (*models.Patient, error) {
	patient, err := s.patients.GetByNationalID(ctx, tx, req.NationalID)
	if err != nil {
		return nil, err
	}

	if patient == nil {
		patient = &models.Patient{
			NationalID: req.NationalID,
			Active:     true,
		}
	}

	patient.Name = req.Name
	patient.Phone = req.Phone
	patient.Allergies = req.Allergies
	patient.Surgeries = req.Surgeries
	patient.Notes = req.Notes
	patient.Active = true
	applyMedicalDefaults(patient)

	if err := s.patients.Save(ctx, tx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func applyMedicalDefaults(patient *models.Patient) {
	if patient.Allergies == "" {
		patient.Allergies = models.DefaultAllergies
	}
	if patient.Surgeries == "" {
		patient.Surgeries = models.DefaultSurgeries
	}
}
