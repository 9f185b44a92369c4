package repository

import (
	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
	FindPage(db *gorm.DB, offset, limit int) ([]entity.AuditLog, error)
	Count(db *gorm.DB) (int64, error)
}
