package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAppointmentUsecase returns canned results and records the arguments it
// was called with.
type stubAppointmentUsecase struct {
	createResp *dto.AppointmentResponse
	createErr  error

	listResp *dto.AppointmentListResponse
	listErr  error
	listDate time.Time
	listDoc  *int64

	getResp *dto.AppointmentResponse
	getErr  error
}

func (s *stubAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubAppointmentUsecase) ListAppointments(ctx context.Context, date time.Time, doctorID *int64) (*dto.AppointmentListResponse, error) {
	s.listDate = date
	s.listDoc = doctorID
	return s.listResp, s.listErr
}

func (s *stubAppointmentUsecase) GetAppointment(ctx context.Context, appointmentID int64) (*dto.AppointmentResponse, error) {
	return s.getResp, s.getErr
}

func newAppointmentRouter(stub *stubAppointmentUsecase) *mux.Router {
	h := NewAppointmentHandler(stub, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/appointments", h.CreateAppointment).Methods(http.MethodPost)
	r.HandleFunc("/appointments", h.ListAppointments).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{id}", h.GetAppointment).Methods(http.MethodGet)
	return r
}

func createAppointmentBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(dto.CreateAppointmentRequest{
		PatientID:       1,
		DoctorID:        1,
		StartTime:       time.Now().UTC().Add(48 * time.Hour),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestCreateAppointmentHandlerCreated(t *testing.T) {
	stub := &stubAppointmentUsecase{
		createResp: &dto.AppointmentResponse{ID: 1, PatientID: 1, DoctorID: 1, DurationMinutes: 30},
	}
	router := newAppointmentRouter(stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", createAppointmentBody(t)))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool                    `json:"success"`
		Data    dto.AppointmentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.Data.ID)
}

func TestCreateAppointmentHandlerConflict(t *testing.T) {
	stub := &stubAppointmentUsecase{createErr: usecase.ErrAppointmentConflict}
	router := newAppointmentRouter(stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", createAppointmentBody(t)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateAppointmentHandlerBadRequests(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"duration out of range", usecase.ErrDurationOutOfRange},
		{"start in past", usecase.ErrAppointmentInPast},
		{"doctor not found", usecase.ErrDoctorNotFound},
		{"doctor inactive", usecase.ErrDoctorInactive},
		{"patient not found", usecase.ErrPatientNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAppointmentRouter(&stubAppointmentUsecase{createErr: tt.err})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", createAppointmentBody(t)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateAppointmentHandlerValidation(t *testing.T) {
	router := newAppointmentRouter(&stubAppointmentUsecase{})

	// duration below the validation floor never reaches the usecase
	body, err := json.Marshal(dto.CreateAppointmentRequest{
		PatientID:       1,
		DoctorID:        1,
		StartTime:       time.Now().UTC().Add(48 * time.Hour),
		DurationMinutes: 5,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewBuffer(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "DurationMinutes")
}

func TestCreateAppointmentHandlerInvalidBody(t *testing.T) {
	router := newAppointmentRouter(&stubAppointmentUsecase{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewBufferString("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAppointmentsHandler(t *testing.T) {
	stub := &stubAppointmentUsecase{
		listResp: &dto.AppointmentListResponse{
			Appointments: []dto.AppointmentResponse{{ID: 1, DoctorID: 2}},
			Total:        1,
		},
	}
	router := newAppointmentRouter(stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments?date=2026-09-01&doctor_id=2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), stub.listDate)
	require.NotNil(t, stub.listDoc)
	assert.Equal(t, int64(2), *stub.listDoc)
}

func TestListAppointmentsHandlerBadDate(t *testing.T) {
	router := newAppointmentRouter(&stubAppointmentUsecase{})

	for _, target := range []string{"/appointments", "/appointments?date=09-01-2026", "/appointments?date=notadate"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestListAppointmentsHandlerBadDoctorID(t *testing.T) {
	router := newAppointmentRouter(&stubAppointmentUsecase{})

	for _, target := range []string{"/appointments?date=2026-09-01&doctor_id=0", "/appointments?date=2026-09-01&doctor_id=abc"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestGetAppointmentHandler(t *testing.T) {
	stub := &stubAppointmentUsecase{getResp: &dto.AppointmentResponse{ID: 7}}
	router := newAppointmentRouter(stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments/7", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetAppointmentHandlerNotFound(t *testing.T) {
	stub := &stubAppointmentUsecase{getErr: usecase.ErrAppointmentNotFound}
	router := newAppointmentRouter(stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/appointments/%d", 42), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
