package services

import (
	"MediCitas/models"
	"context"
	"errors"
	"testing"
	"time"
)

type patientFixture struct {
	service      PatientService
	patients     *memPatientRepo
	appointments *memAppointmentRepo
}

func newPatientFixture(t *testing.T) *patientFixture {
	t.Helper()
	f := &patientFixture{
		patients:     newMemPatientRepo(),
		appointments: newMemAppointmentRepo(),
	}
	f.service = NewPatientService(fakeTxManager{}, f.patients, f.appointments)
	return f
}

func (f *patientFixture) seedPatient(t *testing.T, nationalID string) *models.Patient {
	t.Helper()
	patient := &models.Patient{NationalID: nationalID, Name: "Maria Lopez", Active: true}
	if err := f.patients.Save(context.Background(), nil, patient); err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return patient
}

func (f *patientFixture) seedAppointment(t *testing.T, patientID uint, start time.Time) *models.Appointment {
	t.Helper()
	appointment := &models.Appointment{
		DoctorID:  1,
		PatientID: patientID,
		StartsAt:  start,
		EndsAt:    start.Add(30 * time.Minute),
		Active:    true,
	}
	if err := f.appointments.Create(context.Background(), nil, appointment); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return appointment
}

func TestPatientDeactivateCascades(t *testing.T) {
	f := newPatientFixture(t)
	patient := f.seedPatient(t, "1234567")
	other := f.seedPatient(t, "7654321")

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	first := f.seedAppointment(t, patient.ID, start)
	second := f.seedAppointment(t, patient.ID, start.Add(2*time.Hour))
	unrelated := f.seedAppointment(t, other.ID, start.Add(4*time.Hour))

	if err := f.service.Deactivate(context.Background(), patient.ID); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}

	got, _ := f.patients.GetByID(context.Background(), patient.ID)
	if got.Active {
		t.Error("patient should be inactive")
	}
	for _, id := range []uint{first.ID, second.ID} {
		appointment, _ := f.appointments.GetByID(context.Background(), id)
		if appointment.Active {
			t.Errorf("appointment %d should have been deactivated by the cascade", id)
		}
	}
	appointment, _ := f.appointments.GetByID(context.Background(), unrelated.ID)
	if !appointment.Active {
		t.Error("another patient's appointment must not be touched")
	}
}

func TestPatientRestoreDoesNotReviveAppointments(t *testing.T) {
	f := newPatientFixture(t)
	patient := f.seedPatient(t, "1234567")
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	appointment := f.seedAppointment(t, patient.ID, start)

	if err := f.service.Deactivate(context.Background(), patient.ID); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if err := f.service.Restore(context.Background(), patient.ID); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	got, _ := f.patients.GetByID(context.Background(), patient.ID)
	if !got.Active {
		t.Error("patient should be active after restore")
	}
	restored, _ := f.appointments.GetByID(context.Background(), appointment.ID)
	if restored.Active {
		t.Error("cascaded appointments stay trashed after patient restore")
	}
}

func TestPatientDeactivateIdempotent(t *testing.T) {
	f := newPatientFixture(t)
	patient := f.seedPatient(t, "1234567")

	if err := f.service.Deactivate(context.Background(), patient.ID); err != nil {
		t.Fatalf("first Deactivate() error = %v", err)
	}
	if err := f.service.Deactivate(context.Background(), patient.ID); err != nil {
		t.Fatalf("second Deactivate() error = %v", err)
	}
}

func TestPatientLifecycleUnknownID(t *testing.T) {
	f := newPatientFixture(t)

	if err := f.service.Deactivate(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deactivate(99) error = %v, want ErrNotFound", err)
	}
	if err := f.service.Restore(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Restore(99) error = %v, want ErrNotFound", err)
	}
}

func TestPatientSearchEmptyPrefix(t *testing.T) {
	f := newPatientFixture(t)
	f.seedPatient(t, "1234567")

	results, err := f.service.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty query returned %d patients, want 0", len(results))
	}
}

func TestPatientSearchCapsResults(t *testing.T) {
	f := newPatientFixture(t)
	for _, id := range []string{"5550001", "5550002", "5550003", "5550004", "5550005", "5550006", "5550007"} {
		f.seedPatient(t, id)
	}

	results, err := f.service.Search(context.Background(), "555")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 5 {
		t.Errorf("Search() returned %d patients, want 5", len(results))
	}
}

func TestPatientCreateRejectsDuplicate(t *testing.T) {
	f := newPatientFixture(t)
	f.seedPatient(t, "1234567")

	err := f.service.Create(context.Background(), &models.Patient{NationalID: "1234567", Name: "Someone Else"})
	if !errors.Is(err, ErrPatientExists) {
		t.Errorf("Create() error = %v, want ErrPatientExists", err)
	}
}

func TestPatientCreateAppliesDefaults(t *testing.T) {
	f := newPatientFixture(t)

	patient := &models.Patient{NationalID: "1234567", Name: "Maria Lopez"}
	if err := f.service.Create(context.Background(), patient); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if patient.Allergies != models.DefaultAllergies || patient.Surgeries != models.DefaultSurgeries {
		t.Errorf("defaults not applied: %q / %q", patient.Allergies, patient.Surgeries)
	}
	if !patient.Active {
		t.Error("created patient should be active")
	}
}

func TestPatientCreateValidatesNationalID(t *testing.T) {
	f := newPatientFixture(t)

	err := f.service.Create(context.Background(), &models.Patient{NationalID: "12a", Name: "Bad ID"})
	if !errors.Is(err, ErrInvalidNationalID) {
		t.Errorf("Create() error = %v, want ErrInvalidNationalID", err)
	}
}

func TestPatientUpdatePreservesIdentity(t *testing.T) {
	f := newPatientFixture(t)
	seeded := f.seedPatient(t, "1234567")

	update := &models.Patient{ID: seeded.ID, NationalID: "9999999", Name: "New Name"}
	if err := f.service.Update(context.Background(), update); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := f.patients.GetByID(context.Background(), seeded.ID)
	if got.NationalID != "1234567" {
		t.Errorf("national id changed to %q; it is immutable through update", got.NationalID)
	}
	if got.Name != "New Name" {
		t.Errorf("name = %q, want %q", got.Name, "New Name")
	}
}
