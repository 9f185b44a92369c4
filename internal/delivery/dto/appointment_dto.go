package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       int64     `json:"patient_id" validate:"required,gt=0"`
	DoctorID        int64     `json:"doctor_id" validate:"required,gt=0"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gte=10,lte=180"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patient_id"`
	DoctorID        int64     `json:"doctor_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
