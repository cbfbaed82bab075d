package repositories

import (
	"MediCitas/models"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SettingsRepository manages the singleton clinic configuration row.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.ClinicSettings, error)
	Update(ctx context.Context, settings *models.ClinicSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the settings row, creating it with defaults on first read.
func (r *settingsRepository) Get(ctx context.Context) (*models.ClinicSettings, error) {
	settings := models.ClinicSettings{
		ID:       1,
		OpensAt:  models.DefaultOpensAt,
		ClosesAt: models.DefaultClosesAt,
		WorkDays: models.DefaultWorkDays,
	}
	err := r.db.WithContext(ctx).
		Where(models.ClinicSettings{ID: 1}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load clinic settings")
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *models.ClinicSettings) error {
	settings.ID = 1
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return errors.Wrap(err, "failed to update clinic settings")
	}
	return nil
}
