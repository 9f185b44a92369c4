package repository

import (
	"errors"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id int64) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Order("id ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// SetActive flips the active flag unconditionally so repeated calls are
// idempotent. Returns affected rows: 0 means the doctor does not exist.
func (r *doctorRepository) SetActive(db *gorm.DB, id int64, active bool) (int64, error) {
	result := db.Model(&entity.Doctor{}).
		Where("id = ?", id).
		Update("active", active)
	return result.RowsAffected, result.Error
}
