package repositories

import (
	"MediCitas/models"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AdminRepository manages the back-office credential record.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	UpdateEmail(ctx context.Context, id uint, email string) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get admin by username")
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get admin by email")
	}
	return &admin, nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
	return errors.Wrap(err, "failed to update admin password")
}

func (r *adminRepository) UpdateEmail(ctx context.Context, id uint, email string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", id).
		Update("email", email).Error
	return errors.Wrap(err, "failed to update admin email")
}
