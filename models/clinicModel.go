package models

import (
	"time"
)

// Default placeholders applied when a booking omits the medical history fields.
const (
	DefaultAllergies = "No known allergies"
	DefaultSurgeries = "None"
)

// Doctor model
type Doctor struct {
	ID           uint          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name         string        `gorm:"column:name;not null;index" json:"name"`
	Specialty    string        `gorm:"column:specialty;not null" json:"specialty"`
	SlotMinutes  int           `gorm:"column:slot_minutes;not null;default:30" json:"slot_minutes"`
	WorkStart    string        `gorm:"column:work_start" json:"work_start"`
	WorkEnd      string        `gorm:"column:work_end" json:"work_end"`
	Active       bool          `gorm:"column:active;not null;default:true;index" json:"active"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// HasCustomHours reports whether the doctor overrides the clinic-wide
// opening hours. An empty pair means the ClinicSettings values apply.
func (d *Doctor) HasCustomHours() bool {
	return d.WorkStart != "" && d.WorkEnd != ""
}

// Patient model. NationalID is unique across active and inactive rows:
// a trashed patient keeps its id and is revived by the next booking.
type Patient struct {
	ID           uint          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	NationalID   string        `gorm:"column:national_id;not null;uniqueIndex" json:"national_id"`
	Name         string        `gorm:"column:name;not null" json:"name"`
	Phone        string        `gorm:"column:phone" json:"phone"`
	Allergies    string        `gorm:"column:allergies;not null" json:"allergies"`
	Surgeries    string        `gorm:"column:surgeries;not null" json:"surgeries"`
	Notes        string        `gorm:"column:notes" json:"notes"`
	Active       bool          `gorm:"column:active;not null;default:true;index" json:"active"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments []Appointment `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Appointment model. EndsAt is always caller-supplied and never derived
// from the doctor's slot duration.
type Appointment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	DoctorID  uint      `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	PatientID uint      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	StartsAt  time.Time `gorm:"column:starts_at;not null;index" json:"starts_at"`
	EndsAt    time.Time `gorm:"column:ends_at;not null" json:"ends_at"`
	Motive    string    `gorm:"column:motive;not null" json:"motive"`
	Active    bool      `gorm:"column:active;not null;default:true;index" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor    Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Patient   Patient   `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Overlaps reports whether the appointment intersects the half-open
// interval [start, end). Touching endpoints do not overlap, so
// back-to-back appointments are allowed.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartsAt.Before(end) && a.EndsAt.After(start)
}
