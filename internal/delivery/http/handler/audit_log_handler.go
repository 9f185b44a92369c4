package handler

import (
	"net/http"
	"strconv"

	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	logs, err := h.auditLogUsecase.GetAuditLogs(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	meta := &response.Meta{
		Page:       logs.Page,
		Limit:      logs.Limit,
		Total:      logs.Total,
		TotalPages: logs.TotalPages,
	}
	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", logs.Logs, meta)
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		if err == usecase.ErrAuditLogNotFound {
			response.NotFound(w, "Audit log not found")
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}
