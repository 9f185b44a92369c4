package http

import (
	"net/http"

	"clinic-scheduling-api/internal/delivery/http/handler"
	"clinic-scheduling-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                  *mux.Router
	patientHandler          *handler.PatientHandler
	doctorHandler           *handler.DoctorHandler
	appointmentHandler      *handler.AppointmentHandler
	auditLogHandler         *handler.AuditLogHandler
	corsMiddleware          *middleware.CORSMiddleware
	requestLoggerMiddleware *middleware.RequestLoggerMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	requestLoggerMiddleware *middleware.RequestLoggerMiddleware,
) *Router {
	return &Router{
		router:                  mux.NewRouter(),
		patientHandler:          patientHandler,
		doctorHandler:           doctorHandler,
		appointmentHandler:      appointmentHandler,
		auditLogHandler:         auditLogHandler,
		corsMiddleware:          corsMiddleware,
		requestLoggerMiddleware: requestLoggerMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patients
	r.router.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	r.router.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	r.router.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)

	// Doctors
	r.router.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	r.router.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	r.router.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	r.router.HandleFunc("/doctors/{id}/activate", r.doctorHandler.ActivateDoctor).Methods(http.MethodPut)
	r.router.HandleFunc("/doctors/{id}/deactivate", r.doctorHandler.DeactivateDoctor).Methods(http.MethodPut)

	// Appointments
	r.router.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	r.router.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	r.router.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)

	// Audit trail
	r.router.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	r.router.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.requestLoggerMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
