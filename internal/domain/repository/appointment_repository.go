package repository

import (
	"time"

	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	// FindByDoctorAndWindow returns the doctor's appointments whose start
	// falls within [from, to), ordered by start time.
	FindByDoctorAndWindow(db *gorm.DB, doctorID int64, from, to time.Time) ([]entity.Appointment, error)
	// FindByWindow returns all appointments starting within [from, to),
	// ordered by start time.
	FindByWindow(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error)
	// LockDoctor serializes concurrent scheduling for one doctor within the
	// current transaction. Released automatically on commit or rollback.
	LockDoctor(db *gorm.DB, doctorID int64) error
}
