package dto

import "time"

// Request DTOs

type CreateDoctorRequest struct {
	FullName       string `json:"full_name" validate:"required,min=2,max=100"`
	Specialization string `json:"specialization" validate:"required,max=100"`
}

// Response DTOs

type DoctorResponse struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	Specialization string    `json:"specialization"`
	Active         *bool     `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
