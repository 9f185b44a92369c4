package usecase

import (
	"context"
	"errors"
	"strconv"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID int64) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	SetDoctorActive(ctx context.Context, doctorID int64, active bool) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor := &entity.Doctor{
		FullName:       req.FullName,
		Specialization: req.Specialization,
	}

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionDoctorCreate, "doctor", strconv.FormatInt(doctor.ID, 10), converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID int64) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// SetDoctorActive flips the active flag. Repeating the same state is a no-op
// that still succeeds, so deactivating twice stays idempotent.
func (u *doctorUsecase) SetDoctorActive(ctx context.Context, doctorID int64, active bool) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.doctorRepo.SetActive(tx, doctorID, active)
	if err != nil {
		u.log.Warnf("Failed to update doctor %d active flag: %+v", doctorID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrDoctorNotFound
	}

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to reload doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	action := entity.AuditActionDoctorDeactivate
	if active {
		action = entity.AuditActionDoctorActivate
	}
	if err := u.auditService.LogUpdate(ctx, tx, action, "doctor", strconv.FormatInt(doctorID, 10), nil, converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}
