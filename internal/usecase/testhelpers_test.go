package usecase

import (
	"testing"
	"time"

	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB returns a GORM handle backed by sqlmock so transaction
// begin/commit/rollback can be asserted without a live database. Repository
// calls are faked at the interface level, so no SQL expectations are needed
// beyond the transaction lifecycle.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// fakeAuditLogRepo collects audit entries in memory.
type fakeAuditLogRepo struct {
	logs []entity.AuditLog
}

func (f *fakeAuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeAuditLogRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	for i := range f.logs {
		if f.logs[i].ID == id {
			return &f.logs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAuditLogRepo) FindPage(db *gorm.DB, offset, limit int) ([]entity.AuditLog, error) {
	if offset >= len(f.logs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.logs) {
		end = len(f.logs)
	}
	return f.logs[offset:end], nil
}

func (f *fakeAuditLogRepo) Count(db *gorm.DB) (int64, error) {
	return int64(len(f.logs)), nil
}

func newTestAuditService(db *gorm.DB) (service.AuditService, *fakeAuditLogRepo) {
	repo := &fakeAuditLogRepo{}
	return service.NewAuditService(db, testLogger(), repo), repo
}

// fakeDoctorRepo serves doctors from a map keyed by ID.
type fakeDoctorRepo struct {
	doctors map[int64]*entity.Doctor
}

func newFakeDoctorRepo(doctors ...*entity.Doctor) *fakeDoctorRepo {
	m := make(map[int64]*entity.Doctor, len(doctors))
	for _, d := range doctors {
		m[d.ID] = d
	}
	return &fakeDoctorRepo{doctors: m}
}

func (f *fakeDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error {
	doctor.ID = int64(len(f.doctors) + 1)
	active := true
	if doctor.Active == nil {
		doctor.Active = &active
	}
	doctor.CreatedAt = time.Now().UTC()
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) FindByID(db *gorm.DB, id int64) (*entity.Doctor, error) {
	return f.doctors[id], nil
}

func (f *fakeDoctorRepo) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	doctors := make([]entity.Doctor, 0, len(f.doctors))
	for _, d := range f.doctors {
		doctors = append(doctors, *d)
	}
	return doctors, nil
}

func (f *fakeDoctorRepo) SetActive(db *gorm.DB, id int64, active bool) (int64, error) {
	doctor, ok := f.doctors[id]
	if !ok {
		return 0, nil
	}
	doctor.Active = &active
	return 1, nil
}

// fakeAppointmentRepo serves a fixed slice of existing appointments and
// records the windows it was queried with.
type fakeAppointmentRepo struct {
	existing  []entity.Appointment
	created   []entity.Appointment
	createErr error

	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	appointment.ID = int64(len(f.created) + 1)
	appointment.CreatedAt = time.Now().UTC()
	f.created = append(f.created, *appointment)
	return nil
}

func (f *fakeAppointmentRepo) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	for i := range f.created {
		if f.created[i].ID == id {
			return &f.created[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByDoctorAndWindow(db *gorm.DB, doctorID int64, from, to time.Time) ([]entity.Appointment, error) {
	f.lastFrom, f.lastTo = from, to
	var out []entity.Appointment
	for _, a := range f.existing {
		if a.DoctorID == doctorID && !a.StartTime.Before(from) && a.StartTime.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByWindow(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error) {
	f.lastFrom, f.lastTo = from, to
	var out []entity.Appointment
	for _, a := range f.existing {
		if !a.StartTime.Before(from) && a.StartTime.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) LockDoctor(db *gorm.DB, doctorID int64) error {
	return nil
}

// fakePatientRepo stores patients in memory and can simulate constraint
// violations on insert.
type fakePatientRepo struct {
	patients  map[int64]*entity.Patient
	createErr error
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[int64]*entity.Patient)}
}

func (f *fakePatientRepo) Create(db *gorm.DB, patient *entity.Patient) error {
	if f.createErr != nil {
		return f.createErr
	}
	patient.ID = int64(len(f.patients) + 1)
	patient.CreatedAt = time.Now().UTC()
	patient.UpdatedAt = patient.CreatedAt
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) FindByID(db *gorm.DB, id int64) (*entity.Patient, error) {
	return f.patients[id], nil
}

func (f *fakePatientRepo) FindByEmail(db *gorm.DB, email string) (*entity.Patient, error) {
	for _, p := range f.patients {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	patients := make([]entity.Patient, 0, len(f.patients))
	for _, p := range f.patients {
		patients = append(patients, *p)
	}
	return patients, nil
}

func boolPtr(v bool) *bool { return &v }
