package entity

import "time"

// Duration bounds for a single appointment, in minutes.
const (
	MinAppointmentMinutes = 10
	MaxAppointmentMinutes = 180
)

// Appointment represents a booked time slot for a doctor and patient.
// The interval is half-open: [StartTime, StartTime+Duration).
type Appointment struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       int64     `gorm:"not null;index" json:"patient_id"`
	DoctorID        int64     `gorm:"not null;index" json:"doctor_id"`
	StartTime       time.Time `gorm:"type:timestamptz;not null;index" json:"start_time"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// EndTime returns the exclusive end of the appointment interval.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the appointment intersects the half-open
// interval [start, end). Back-to-back slots (end == next start) do not
// overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime().After(start)
}
