package services

import (
	"MediCitas/repositories"
	"context"
	"strconv"
	"time"
)

// CalendarEvent is the public booking-calendar payload for one occupied
// slot, shaped for the frontend calendar widget.
type CalendarEvent struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Start string     `json:"start"`
	End   string     `json:"end"`
	Color string     `json:"color"`
	Props EventProps `json:"extendedProps"`
}

// EventProps carries the patient snapshot shown when a slot is opened.
type EventProps struct {
	AppointmentID uint   `json:"appointment_id"`
	NationalID    string `json:"national_id"`
	Name          string `json:"name"`
	Motive        string `json:"motive"`
	Allergies     string `json:"allergies"`
	Surgeries     string `json:"surgeries"`
	Notes         string `json:"notes"`
}

const occupiedSlotColor = "#ef4444"

// AppointmentService serves the calendar feed and the per-appointment
// soft-delete lifecycle. Booking and editing go through the Scheduler.
type AppointmentService interface {
	CalendarForDoctor(ctx context.Context, doctorID uint) ([]CalendarEvent, error)
	Cancel(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
}

type appointmentService struct {
	appointments repositories.AppointmentRepository
}

func NewAppointmentService(appointments repositories.AppointmentRepository) AppointmentService {
	return &appointmentService{appointments: appointments}
}

// CalendarForDoctor lists the doctor's active appointments as calendar
// events. An unknown doctor simply yields an empty calendar.
func (s *appointmentService) CalendarForDoctor(ctx context.Context, doctorID uint) ([]CalendarEvent, error) {
	appointments, err := s.appointments.ActiveForDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	events := make([]CalendarEvent, 0, len(appointments))
	for _, appointment := range appointments {
		events = append(events, CalendarEvent{
			ID:    strconv.FormatUint(uint64(appointment.ID), 10),
			Title: "Occupied",
			Start: appointment.StartsAt.Format(time.RFC3339),
			End:   appointment.EndsAt.Format(time.RFC3339),
			Color: occupiedSlotColor,
			Props: EventProps{
				AppointmentID: appointment.ID,
				NationalID:    appointment.Patient.NationalID,
				Name:          appointment.Patient.Name,
				Motive:        appointment.Motive,
				Allergies:     appointment.Patient.Allergies,
				Surgeries:     appointment.Patient.Surgeries,
				Notes:         appointment.Patient.Notes,
			},
		})
	}
	return events, nil
}

// Cancel soft-deletes the appointment. Cancelling an already-cancelled
// appointment succeeds without changing anything else.
func (s *appointmentService) Cancel(ctx context.Context, id uint) error {
	found, err := s.appointments.SetActive(ctx, id, false)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *appointmentService) Restore(ctx context.Context, id uint) error {
	found, err := s.appointments.SetActive(ctx, id, true)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
