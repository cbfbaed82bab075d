package repositories

import (
	"MediCitas/cache"
	"MediCitas/models"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	CalendarCacheExpiry = 15 * time.Minute
)

// AppointmentRepository persists appointments and answers the overlap
// question for the scheduler. Methods that take a tx handle participate in
// the caller's transaction; passing nil uses the repository's own handle.
type AppointmentRepository interface {
	HasConflict(ctx context.Context, tx *gorm.DB, doctorID uint, start, end time.Time, excludeID uint) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Create(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error
	Update(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error
	ActiveForDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error)
	SetActive(ctx context.Context, id uint, active bool) (bool, error)
	DeactivateForPatient(ctx context.Context, tx *gorm.DB, patientID uint) error
	CountActive(ctx context.Context) (int64, error)
}

type appointmentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAppointmentRepository(db *gorm.DB, cache *cache.Cache) AppointmentRepository {
	return &appointmentRepository{db: db, cache: cache}
}

func (r *appointmentRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// HasConflict reports whether any active appointment of the doctor
// intersects the half-open interval [start, end). Touching endpoints do
// not count, so back-to-back bookings pass. excludeID, when non-zero,
// removes the appointment being edited from the candidate set.
func (r *appointmentRepository) HasConflict(ctx context.Context, tx *gorm.DB, doctorID uint, start, end time.Time, excludeID uint) (bool, error) {
	query := r.handle(tx).WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND active = ?", doctorID, true).
		Where("starts_at < ? AND ends_at > ?", end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check appointment conflicts")
	}
	return count > 0, nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, national_id, name, phone, allergies, surgeries, notes, active")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) Create(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error {
	appointment.Active = true
	if err := r.handle(tx).WithContext(ctx).Create(appointment).Error; err != nil {
		return errors.Wrap(err, "failed to create appointment")
	}
	r.invalidateCalendar(ctx, appointment.DoctorID)
	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error {
	if err := r.handle(tx).WithContext(ctx).Save(appointment).Error; err != nil {
		return errors.Wrap(err, "failed to update appointment")
	}
	r.invalidateCalendar(ctx, appointment.DoctorID)
	return nil
}

// ActiveForDoctor returns the doctor's active appointments with their
// patient snapshot, ordered by start time. Backs the public calendar.
func (r *appointmentRepository) ActiveForDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.calendarCacheKey(doctorID)
	var cached []models.Appointment
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if err != cache.ErrCacheMiss {
		log.Printf("Failed to get calendar from cache: %v", err)
	}

	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, national_id, name, phone, allergies, surgeries, notes, active")
		}).
		Where("doctor_id = ? AND active = ?", doctorID, true).
		Order("starts_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list doctor appointments")
	}

	if err := r.cache.SetJSON(ctx, cacheKey, appointments, CalendarCacheExpiry); err != nil {
		log.Printf("Failed to set calendar in cache: %v", err)
	}

	return appointments, nil
}

// SetActive flips the soft-delete flag. Flipping to the current value is a
// no-op success. Returns false when the id does not resolve.
func (r *appointmentRepository) SetActive(ctx context.Context, id uint, active bool) (bool, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to get appointment")
	}

	if appointment.Active != active {
		err = r.db.WithContext(ctx).Model(&appointment).Update("active", active).Error
		if err != nil {
			return false, errors.Wrap(err, "failed to update appointment state")
		}
	}
	r.invalidateCalendar(ctx, appointment.DoctorID)
	return true, nil
}

// DeactivateForPatient bulk-deactivates every active appointment of the
// patient, across all doctors. Part of the patient cascade transaction.
func (r *appointmentRepository) DeactivateForPatient(ctx context.Context, tx *gorm.DB, patientID uint) error {
	err := r.handle(tx).WithContext(ctx).
		Model(&models.Appointment{}).
		Where("patient_id = ? AND active = ?", patientID, true).
		Update("active", false).Error
	if err != nil {
		return errors.Wrap(err, "failed to deactivate patient appointments")
	}
	if err := r.cache.DeleteAll(ctx, "calendar_cache:*"); err != nil {
		log.Printf("Failed to invalidate calendar caches: %v", err)
	}
	return nil
}

func (r *appointmentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count active appointments")
	}
	return count, nil
}

func (r *appointmentRepository) invalidateCalendar(ctx context.Context, doctorID uint) {
	if err := r.cache.Delete(ctx, r.calendarCacheKey(doctorID)); err != nil {
		log.Printf("Failed to invalidate calendar cache: %v", err)
	}
}

func (r *appointmentRepository) calendarCacheKey(doctorID uint) string {
	return fmt.Sprintf("calendar_cache:%d", doctorID)
}
