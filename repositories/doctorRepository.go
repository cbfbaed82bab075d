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
	DoctorCacheExpiry = 24 * time.Hour

	doctorsCacheKey = "doctors_cache"
)

// DoctorRepository persists doctors and their lifecycle flag.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	Update(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	GetAll(ctx context.Context, includeInactive bool) ([]models.Doctor, error)
	SetActive(ctx context.Context, id uint, active bool) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

type doctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) DoctorRepository {
	return &doctorRepository{db: db, cache: cache}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	doctor.Active = true
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return errors.Wrap(err, "failed to create doctor")
	}
	r.invalidate(ctx, doctor.ID)
	return nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Save(doctor).Error; err != nil {
		return errors.Wrap(err, "failed to update doctor")
	}
	r.invalidate(ctx, doctor.ID)
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.doctorCacheKey(id)
	var cached models.Doctor
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrCacheMiss {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get doctor")
	}

	if err := r.cache.SetJSON(ctx, cacheKey, doctor, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctor in cache: %v", err)
	}

	return &doctor, nil
}

func (r *doctorRepository) GetAll(ctx context.Context, includeInactive bool) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Only the public active listing is cached; the admin trash view goes
	// straight to the database.
	if !includeInactive {
		var cached []models.Doctor
		if err := r.cache.GetJSON(ctx, doctorsCacheKey, &cached); err == nil {
			return cached, nil
		} else if err != cache.ErrCacheMiss {
			log.Printf("Failed to get doctors from cache: %v", err)
		}
	}

	query := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list doctors")
	}

	if !includeInactive {
		if err := r.cache.SetJSON(ctx, doctorsCacheKey, doctors, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctors in cache: %v", err)
		}
	}

	return doctors, nil
}

// SetActive flips the soft-delete flag; a repeat flip is a no-op success.
// Returns false when the id does not resolve.
func (r *doctorRepository) SetActive(ctx context.Context, id uint, active bool) (bool, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to get doctor")
	}

	if doctor.Active != active {
		err = r.db.WithContext(ctx).Model(&doctor).Update("active", active).Error
		if err != nil {
			return false, errors.Wrap(err, "failed to update doctor state")
		}
	}
	r.invalidate(ctx, id)
	return true, nil
}

func (r *doctorRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count active doctors")
	}
	return count, nil
}

func (r *doctorRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.doctorCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate doctor cache: %v", err)
	}
	if err := r.cache.Delete(ctx, doctorsCacheKey); err != nil {
		log.Printf("Failed to invalidate doctors cache: %v", err)
	}
}

func (r *doctorRepository) doctorCacheKey(id uint) string {
	return fmt.Sprintf("doctor_cache:%d", id)
}
