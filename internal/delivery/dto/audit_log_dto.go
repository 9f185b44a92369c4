package dto

import (
	"time"

	"clinic-scheduling-api/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs       []AuditLogResponse `json:"logs"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"total_pages"`
}
