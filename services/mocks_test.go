package services

import (
	"MediCitas/models"
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// In-memory doubles for the repository interfaces. The tx handle is
// ignored; these stores are not transactional.

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeLocker struct {
	acquired []string
	released int
}

func (l *fakeLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.acquired = append(l.acquired, key)
	return func() { l.released++ }, nil
}

type memDoctorRepo struct {
	doctors map[uint]*models.Doctor
	nextID  uint
}

func newMemDoctorRepo() *memDoctorRepo {
	return &memDoctorRepo{doctors: make(map[uint]*models.Doctor), nextID: 1}
}

func (r *memDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	doctor.ID = r.nextID
	r.nextID++
	doctor.Active = true
	copied := *doctor
	r.doctors[doctor.ID] = &copied
	return nil
}

func (r *memDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	copied := *doctor
	r.doctors[doctor.ID] = &copied
	return nil
}

func (r *memDoctorRepo) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	copied := *doctor
	return &copied, nil
}

func (r *memDoctorRepo) GetAll(ctx context.Context, includeInactive bool) ([]models.Doctor, error) {
	var doctors []models.Doctor
	for _, doctor := range r.doctors {
		if doctor.Active || includeInactive {
			doctors = append(doctors, *doctor)
		}
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].ID < doctors[j].ID })
	return doctors, nil
}

func (r *memDoctorRepo) SetActive(ctx context.Context, id uint, active bool) (bool, error) {
	doctor, ok := r.doctors[id]
	if !ok {
		return false, nil
	}
	doctor.Active = active
	return true, nil
}

func (r *memDoctorRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	for _, doctor := range r.doctors {
		if doctor.Active {
			count++
		}
	}
	return count, nil
}

type memPatientRepo struct {
	patients map[uint]*models.Patient
	nextID   uint
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: make(map[uint]*models.Patient), nextID: 1}
}

func (r *memPatientRepo) GetByNationalID(ctx context.Context, tx *gorm.DB, nationalID string) (*models.Patient, error) {
	for _, patient := range r.patients {
		if patient.NationalID == nationalID {
			copied := *patient
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memPatientRepo) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	patient, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	copied := *patient
	return &copied, nil
}

func (r *memPatientRepo) SearchByPrefix(ctx context.Context, prefix string) ([]models.Patient, error) {
	var matches []models.Patient
	for _, patient := range r.patients {
		if strings.HasPrefix(patient.NationalID, prefix) {
			matches = append(matches, *patient)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].NationalID < matches[j].NationalID })
	if len(matches) > 5 {
		matches = matches[:5]
	}
	return matches, nil
}

func (r *memPatientRepo) Save(ctx context.Context, tx *gorm.DB, patient *models.Patient) error {
	if patient.ID == 0 {
		patient.ID = r.nextID
		r.nextID++
	}
	copied := *patient
	r.patients[patient.ID] = &copied
	return nil
}

func (r *memPatientRepo) GetAll(ctx context.Context, includeInactive bool) ([]models.Patient, error) {
	var patients []models.Patient
	for _, patient := range r.patients {
		if patient.Active || includeInactive {
			patients = append(patients, *patient)
		}
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return patients, nil
}

func (r *memPatientRepo) SetActive(ctx context.Context, tx *gorm.DB, id uint, active bool) (bool, error) {
	patient, ok := r.patients[id]
	if !ok {
		return false, nil
	}
	patient.Active = active
	return true, nil
}

func (r *memPatientRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	for _, patient := range r.patients {
		if patient.Active {
			count++
		}
	}
	return count, nil
}

type memAppointmentRepo struct {
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: make(map[uint]*models.Appointment), nextID: 1}
}

func (r *memAppointmentRepo) HasConflict(ctx context.Context, tx *gorm.DB, doctorID uint, start, end time.Time, excludeID uint) (bool, error) {
	for _, appointment := range r.appointments {
		if appointment.DoctorID != doctorID || !appointment.Active || appointment.ID == excludeID {
			continue
		}
		if appointment.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAppointmentRepo) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (r *memAppointmentRepo) Create(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error {
	appointment.ID = r.nextID
	r.nextID++
	appointment.Active = true
	copied := *appointment
	r.appointments[appointment.ID] = &copied
	return nil
}

func (r *memAppointmentRepo) Update(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error {
	copied := *appointment
	r.appointments[appointment.ID] = &copied
	return nil
}

func (r *memAppointmentRepo) ActiveForDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	for _, appointment := range r.appointments {
		if appointment.DoctorID == doctorID && appointment.Active {
			appointments = append(appointments, *appointment)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].StartsAt.Before(appointments[j].StartsAt)
	})
	return appointments, nil
}

func (r *memAppointmentRepo) SetActive(ctx context.Context, id uint, active bool) (bool, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return false, nil
	}
	appointment.Active = active
	return true, nil
}

func (r *memAppointmentRepo) DeactivateForPatient(ctx context.Context, tx *gorm.DB, patientID uint) error {
	for _, appointment := range r.appointments {
		if appointment.PatientID == patientID && appointment.Active {
			appointment.Active = false
		}
	}
	return nil
}

func (r *memAppointmentRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	for _, appointment := range r.appointments {
		if appointment.Active {
			count++
		}
	}
	return count, nil
}
