package services

import (
	"MediCitas/repositories"
	"context"
)

// Stats aggregates the active-record counts for the dashboard.
type Stats struct {
	Doctors      int64 `json:"doctors"`
	Patients     int64 `json:"patients"`
	Appointments int64 `json:"appointments"`
}

type StatsService interface {
	Totals(ctx context.Context) (*Stats, error)
}

type statsService struct {
	doctors      repositories.DoctorRepository
	patients     repositories.PatientRepository
	appointments repositories.AppointmentRepository
}

func NewStatsService(
	doctors repositories.DoctorRepository,
	patients repositories.PatientRepository,
	appointments repositories.AppointmentRepository,
) StatsService {
	return &statsService{doctors: doctors, patients: patients, appointments: appointments}
}

func (s *statsService) Totals(ctx context.Context) (*Stats, error) {
	doctors, err := s.doctors.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Doctors: doctors, Patients: patients, Appointments: appointments}, nil
}
