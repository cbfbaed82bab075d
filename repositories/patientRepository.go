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
	PatientCacheExpiry = 24 * time.Hour

	// SearchResultLimit caps the predictive id-prefix search.
	SearchResultLimit = 5
)

// PatientRepository persists patients. Lookups by national id always span
// active and inactive rows: the id is unique regardless of the soft-delete
// flag, and a trashed patient is revived by the next booking rather than
// duplicated.
type PatientRepository interface {
	GetByNationalID(ctx context.Context, tx *gorm.DB, nationalID string) (*models.Patient, error)
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	SearchByPrefix(ctx context.Context, prefix string) ([]models.Patient, error)
	Save(ctx context.Context, tx *gorm.DB, patient *models.Patient) error
	GetAll(ctx context.Context, includeInactive bool) ([]models.Patient, error)
	SetActive(ctx context.Context, tx *gorm.DB, id uint, active bool) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

type patientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) PatientRepository {
	return &patientRepository{db: db, cache: cache}
}

func (r *patientRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// GetByNationalID finds the single row holding this national id, active or
// not. Returns nil when the id has never been seen.
func (r *patientRepository) GetByNationalID(ctx context.Context, tx *gorm.DB, nationalID string) (*models.Patient, error) {
	var patient models.Patient
	err := r.handle(tx).WithContext(ctx).
		Where("national_id = ?", nationalID).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get patient by national id")
	}
	return &patient, nil
}

func (r *patientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.patientCacheKey(id)
	var cached models.Patient
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrCacheMiss {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get patient")
	}

	if err := r.cache.SetJSON(ctx, cacheKey, patient, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}

	return &patient, nil
}

// SearchByPrefix backs the predictive booking-form search. Matches active
// and inactive rows; booking a trashed patient revives them.
func (r *patientRepository) SearchByPrefix(ctx context.Context, prefix string) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.WithContext(ctx).
		Select("id, national_id, name, phone, active").
		Where("national_id LIKE ?", prefix+"%").
		Order("national_id ASC").
		Limit(SearchResultLimit).
		Find(&patients).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search patients")
	}
	return patients, nil
}

// Save inserts or updates the row, whichever the primary key calls for.
func (r *patientRepository) Save(ctx context.Context, tx *gorm.DB, patient *models.Patient) error {
	if err := r.handle(tx).WithContext(ctx).Save(patient).Error; err != nil {
		return errors.Wrap(err, "failed to save patient")
	}
	r.invalidate(ctx, patient.ID)
	return nil
}

func (r *patientRepository) GetAll(ctx context.Context, includeInactive bool) ([]models.Patient, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	var patients []models.Patient
	if err := query.Find(&patients).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list patients")
	}
	return patients, nil
}

// SetActive flips the soft-delete flag; a repeat flip is a no-op success.
// Returns false when the id does not resolve.
func (r *patientRepository) SetActive(ctx context.Context, tx *gorm.DB, id uint, active bool) (bool, error) {
	db := r.handle(tx)

	var patient models.Patient
	err := db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to get patient")
	}

	if patient.Active != active {
		err = db.WithContext(ctx).Model(&patient).Update("active", active).Error
		if err != nil {
			return false, errors.Wrap(err, "failed to update patient state")
		}
	}
	r.invalidate(ctx, id)
	return true, nil
}

func (r *patientRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count active patients")
	}
	return count, nil
}

func (r *patientRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.patientCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate patient cache: %v", err)
	}
}

func (r *patientRepository) patientCacheKey(id uint) string {
	return fmt.Sprintf("patient_cache:%d", id)
}
