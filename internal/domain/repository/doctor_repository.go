package repository

import (
	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id int64) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	SetActive(db *gorm.DB, id int64, active bool) (int64, error)
}
