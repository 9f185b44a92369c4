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

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrPatientEmailExists = errors.New("email already exists")
	ErrPatientPhoneExists = errors.New("phone already exists")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, patientID int64) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient := &entity.Patient{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		if isDuplicateKeyError(err, "email") {
			return nil, ErrPatientEmailExists
		}
		if isDuplicateKeyError(err, "phone") {
			return nil, ErrPatientPhoneExists
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionPatientCreate, "patient", strconv.FormatInt(patient.ID, 10), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		// Don't fail the transaction for audit log errors
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, patientID int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}
