package services

import (
	"MediCitas/models"
	"MediCitas/repositories"
	"MediCitas/utils"
	"context"
)

// SettingsService manages the clinic-wide opening hours and working days.
type SettingsService interface {
	Get(ctx context.Context) (*models.ClinicSettings, error)
	Update(ctx context.Context, settings *models.ClinicSettings) error
}

type settingsService struct {
	settings repositories.SettingsRepository
}

func NewSettingsService(settings repositories.SettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*models.ClinicSettings, error) {
	return s.settings.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, settings *models.ClinicSettings) error {
	if err := utils.ValidateClinicSettings(*settings); err != nil {
		return err
	}
	return s.settings.Update(ctx, settings)
}
