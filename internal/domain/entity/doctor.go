package entity

import "time"

// Doctor represents a doctor who can receive appointments.
// Inactive doctors are kept in the table but cannot be booked.
type Doctor struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName       string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Active         *bool     `gorm:"not null;default:true;index" json:"active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsActive reports whether the doctor can receive new appointments.
func (d *Doctor) IsActive() bool {
	return d.Active != nil && *d.Active
}
