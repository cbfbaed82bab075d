package utils

import (
	"MediCitas/models"
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validation errors
var (
	ErrPhoneFormat      = errors.New("phone must be exactly 8 digits and start with 6 or 7")
	ErrNationalIDFormat = errors.New("national id must be 5 to 10 digits")
	ErrTimeFormat       = errors.New("time must be in HH:MM format")
	ErrWorkDaysFormat   = errors.New("working days must be a comma-separated list of weekday codes")
)

var (
	// Local mobile numbers: 8 digits, first digit 6 or 7.
	phoneRegex      = regexp.MustCompile(`^[67]\d{7}$`)
	nationalIDRegex = regexp.MustCompile(`^\d{5,10}$`)
	clockRegex      = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	workDaysRegex   = regexp.MustCompile(`^[1-7](,[1-7])*$`)
)

// ValidatePhone checks the booking phone number format.
func ValidatePhone(phone string) error {
	return validation.Validate(phone,
		validation.Required.Error(ErrPhoneFormat.Error()),
		validation.Match(phoneRegex).Error(ErrPhoneFormat.Error()),
	)
}

// ValidateNationalID checks the patient national-id format.
func ValidateNationalID(id string) error {
	return validation.Validate(id,
		validation.Required.Error(ErrNationalIDFormat.Error()),
		validation.Match(nationalIDRegex).Error(ErrNationalIDFormat.Error()),
	)
}

// Timestamp layouts accepted from the booking form. RFC 3339 first, then
// the HTML datetime-local shapes without a zone.
var appointmentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseAppointmentTime parses a booking timestamp in any accepted layout.
func ParseAppointmentTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range appointmentTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ValidateDoctor validates an admin-submitted doctor record.
func ValidateDoctor(doctor models.Doctor) error {
	return validation.ValidateStruct(&doctor,
		validation.Field(&doctor.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&doctor.Specialty, validation.Required, validation.Length(2, 100)),
		validation.Field(&doctor.SlotMinutes, validation.Required, validation.Min(1)),
		validation.Field(&doctor.WorkStart, validation.Match(clockRegex).Error(ErrTimeFormat.Error())),
		validation.Field(&doctor.WorkEnd, validation.Match(clockRegex).Error(ErrTimeFormat.Error())),
	)
}

// ValidateClinicSettings validates the shape of the settings record.
// Opening/closing times are stored as strings; only the "HH:MM" shape and
// the weekday CSV are enforced.
func ValidateClinicSettings(settings models.ClinicSettings) error {
	return validation.ValidateStruct(&settings,
		validation.Field(&settings.OpensAt, validation.Required, validation.Match(clockRegex).Error(ErrTimeFormat.Error())),
		validation.Field(&settings.ClosesAt, validation.Required, validation.Match(clockRegex).Error(ErrTimeFormat.Error())),
		validation.Field(&settings.WorkDays, validation.Required, validation.Match(workDaysRegex).Error(ErrWorkDaysFormat.Error())),
	)
}
