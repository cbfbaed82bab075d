package services

import (
	"MediCitas/cache"
	"MediCitas/models"
	"MediCitas/repositories"
	"MediCitas/utils"
	"context"
	"errors"
	"fmt"
	"log"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
)

// AuthService authenticates the back-office admin. Passwords are stored
// bcrypt-hashed and compared with constant-time bcrypt comparison; the
// plaintext comparison of earlier revisions is gone.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Admin, string, string, error)
	ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error
	ChangeEmail(ctx context.Context, username, currentPassword, newEmail string) error
	SendResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type authService struct {
	admins repositories.AdminRepository
	cache  *cache.Cache
}

func NewAuthService(admins repositories.AdminRepository, cache *cache.Cache) AuthService {
	return &authService{admins: admins, cache: cache}
}

// Login verifies the credentials and returns the admin with a fresh
// access/refresh token pair.
func (s *authService) Login(ctx context.Context, username, password string) (*models.Admin, string, string, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", "", fmt.Errorf("authentication failed: %w", err)
	}
	if admin == nil || !utils.CheckPassword(admin.Password, password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(admin.Username)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}
	return admin, accessToken, refreshToken, nil
}

func (s *authService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if admin == nil || !utils.CheckPassword(admin.Password, currentPassword) {
		return ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.admins.UpdatePassword(ctx, admin.ID, hashed)
}

// ChangeEmail updates the address reset codes are sent to.
func (s *authService) ChangeEmail(ctx context.Context, username, currentPassword, newEmail string) error {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if admin == nil || !utils.CheckPassword(admin.Password, currentPassword) {
		return ErrInvalidCredentials
	}
	return s.admins.UpdateEmail(ctx, admin.ID, newEmail)
}

// SendResetCode emails a short-lived reset code to the admin address.
// An unknown email is reported as success so the endpoint does not leak
// which address is registered.
func (s *authService) SendResetCode(ctx context.Context, email string) error {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if admin == nil {
		log.Printf("Reset code requested for unknown email")
		return nil
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, s.cache, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	return utils.SendResetCodeEmail(email, code)
}

func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrInvalidResetCode
	}

	stored, err := utils.GetResetCode(ctx, s.cache, email)
	if err != nil {
		return err
	}
	if stored == nil || *stored != code {
		return ErrInvalidResetCode
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.admins.UpdatePassword(ctx, admin.ID, hashed); err != nil {
		return err
	}
	return utils.DeleteResetCode(ctx, s.cache, email)
}
