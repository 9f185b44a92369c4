package repository

import (
	"errors"
	"time"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDoctorAndWindow(db *gorm.DB, doctorID int64, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND start_time >= ? AND start_time < ?", doctorID, from, to).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByWindow(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// LockDoctor takes a transaction-scoped advisory lock keyed by doctor ID.
// Two concurrent CreateAppointment calls for the same doctor serialize here,
// so the overlap check and insert behave as one atomic step.
func (r *appointmentRepository) LockDoctor(db *gorm.DB, doctorID int64) error {
	return db.Exec("SELECT pg_advisory_xact_lock(?)", doctorID).Error
}
