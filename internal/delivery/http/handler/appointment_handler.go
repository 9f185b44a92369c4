package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"
	"clinic-scheduling-api/pkg/validator"

	"github.com/gorilla/mux"
)

const listDateLayout = "2006-01-02"

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDurationOutOfRange:
			response.Error(w, http.StatusBadRequest, "Duration is out of the allowed range", nil)
		case usecase.ErrAppointmentInPast:
			response.Error(w, http.StatusBadRequest, "Start time must be in the future", nil)
		case usecase.ErrDoctorNotFound:
			response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
		case usecase.ErrDoctorInactive:
			response.Error(w, http.StatusBadRequest, "Doctor is not accepting appointments", nil)
		case usecase.ErrPatientNotFound:
			response.Error(w, http.StatusBadRequest, "Patient not found", nil)
		case usecase.ErrAppointmentConflict:
			response.Conflict(w, "Appointment conflict")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := time.Parse(listDateLayout, query.Get("date"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid or missing date, expected YYYY-MM-DD", nil)
		return
	}

	var doctorID *int64
	if raw := query.Get("doctor_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(w, http.StatusBadRequest, "Invalid doctor_id", nil)
			return
		}
		doctorID = &id
	}

	appointments, err := h.appointmentUsecase.ListAppointments(r.Context(), date, doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}
