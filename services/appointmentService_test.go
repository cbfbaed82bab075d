package services

import (
	"MediCitas/models"
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalendarForDoctorMapsEvents(t *testing.T) {
	repo := newMemAppointmentRepo()
	service := NewAppointmentService(repo)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	appointment := &models.Appointment{
		DoctorID:  1,
		PatientID: 7,
		StartsAt:  start,
		EndsAt:    start.Add(30 * time.Minute),
		Motive:    "Checkup",
		Active:    true,
		Patient: models.Patient{
			NationalID: "1234567",
			Name:       "Maria Lopez",
			Allergies:  models.DefaultAllergies,
			Surgeries:  models.DefaultSurgeries,
		},
	}
	if err := repo.Create(context.Background(), nil, appointment); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	events, err := service.CalendarForDoctor(context.Background(), 1)
	if err != nil {
		t.Fatalf("CalendarForDoctor() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	event := events[0]
	if event.Title != "Occupied" {
		t.Errorf("title = %q, want Occupied", event.Title)
	}
	if event.Color != "#ef4444" {
		t.Errorf("color = %q, want #ef4444", event.Color)
	}
	if event.Start != "2026-09-01T09:00:00Z" || event.End != "2026-09-01T09:30:00Z" {
		t.Errorf("interval = %q..%q", event.Start, event.End)
	}
	if event.Props.NationalID != "1234567" || event.Props.Name != "Maria Lopez" {
		t.Errorf("patient snapshot = %+v", event.Props)
	}
	if event.Props.Motive != "Checkup" {
		t.Errorf("motive = %q", event.Props.Motive)
	}
}

func TestCalendarForDoctorSkipsCancelled(t *testing.T) {
	repo := newMemAppointmentRepo()
	service := NewAppointmentService(repo)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	appointment := &models.Appointment{DoctorID: 1, StartsAt: start, EndsAt: start.Add(30 * time.Minute)}
	if err := repo.Create(context.Background(), nil, appointment); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	if _, err := repo.SetActive(context.Background(), appointment.ID, false); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	events, err := service.CalendarForDoctor(context.Background(), 1)
	if err != nil {
		t.Fatalf("CalendarForDoctor() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestCalendarForDoctorUnknownDoctor(t *testing.T) {
	service := NewAppointmentService(newMemAppointmentRepo())

	events, err := service.CalendarForDoctor(context.Background(), 99)
	if err != nil {
		t.Fatalf("CalendarForDoctor() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("unknown doctor yielded %d events, want empty calendar", len(events))
	}
}

func TestCancelAndRestoreAppointment(t *testing.T) {
	repo := newMemAppointmentRepo()
	service := NewAppointmentService(repo)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	appointment := &models.Appointment{DoctorID: 1, StartsAt: start, EndsAt: start.Add(30 * time.Minute)}
	if err := repo.Create(context.Background(), nil, appointment); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	if err := service.Cancel(context.Background(), appointment.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	got, _ := repo.GetByID(context.Background(), appointment.ID)
	if got.Active {
		t.Error("appointment should be inactive after cancel")
	}

	// Cancelling twice is a no-op success.
	if err := service.Cancel(context.Background(), appointment.ID); err != nil {
		t.Fatalf("second Cancel() error = %v", err)
	}

	if err := service.Restore(context.Background(), appointment.ID); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	got, _ = repo.GetByID(context.Background(), appointment.ID)
	if !got.Active {
		t.Error("appointment should be active after restore")
	}

	if err := service.Cancel(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Cancel(99) error = %v, want ErrNotFound", err)
	}
}

func TestStatsTotalsCountActiveOnly(t *testing.T) {
	doctors := newMemDoctorRepo()
	patients := newMemPatientRepo()
	appointments := newMemAppointmentRepo()
	service := NewStatsService(doctors, patients, appointments)

	ctx := context.Background()
	if err := doctors.Create(ctx, &models.Doctor{Name: "Dr. Garcia", Specialty: "General"}); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	if err := doctors.Create(ctx, &models.Doctor{Name: "Dr. Ruiz", Specialty: "Dermatology"}); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	if _, err := doctors.SetActive(ctx, 2, false); err != nil {
		t.Fatalf("deactivate doctor: %v", err)
	}

	if err := patients.Save(ctx, nil, &models.Patient{NationalID: "1234567", Active: true}); err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	if err := patients.Save(ctx, nil, &models.Patient{NationalID: "7654321", Active: false}); err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	if err := appointments.Create(ctx, nil, &models.Appointment{DoctorID: 1, PatientID: 1, StartsAt: start, EndsAt: start.Add(30 * time.Minute)}); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	stats, err := service.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}
	if stats.Doctors != 1 || stats.Patients != 1 || stats.Appointments != 1 {
		t.Errorf("Totals() = %+v, want 1/1/1", stats)
	}
}
