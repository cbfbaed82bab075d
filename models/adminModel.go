package models

import (
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Admin is the singleton back-office credential record. The password
// column always holds a bcrypt hash, never the plain value.
type Admin struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username  string    `gorm:"size:50;not null;unique;column:username" json:"username"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Email     string    `gorm:"column:email" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Admin) TableName() string {
	return "admin"
}

// ClinicSettings is the singleton clinic configuration row. Times are
// stored as "HH:MM" strings and WorkDays as a CSV of weekday codes
// (1=Monday .. 7=Sunday); no business validation beyond shape.
type ClinicSettings struct {
	ID       uint   `gorm:"primaryKey;column:id" json:"id"`
	OpensAt  string `gorm:"column:opens_at;not null" json:"opens_at"`
	ClosesAt string `gorm:"column:closes_at;not null" json:"closes_at"`
	WorkDays string `gorm:"column:work_days;not null" json:"work_days"`
}

func (ClinicSettings) TableName() string {
	return "clinic_settings"
}

const (
	DefaultOpensAt  = "08:00"
	DefaultClosesAt = "18:00"
	DefaultWorkDays = "1,2,3,4,5"
)

// SeedAdmin inserts the default admin credential on first start. The
// initial password comes from ADMIN_PASSWORD and must be changed through
// the back office; a fixed dev fallback keeps local setups working.
func SeedAdmin(db *gorm.DB) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := Admin{Username: "admin", Password: string(hashed)}
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Where(Admin{Username: admin.Username}).FirstOrCreate(&admin).Error
	})
}

// SeedClinicSettings creates the settings row with defaults if absent.
func SeedClinicSettings(db *gorm.DB) error {
	settings := ClinicSettings{
		ID:       1,
		OpensAt:  DefaultOpensAt,
		ClosesAt: DefaultClosesAt,
		WorkDays: DefaultWorkDays,
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Where(ClinicSettings{ID: 1}).FirstOrCreate(&settings).Error
	})
}
