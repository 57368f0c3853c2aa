// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/vote411/sign-tracker/auth"
	"github.com/vote411/sign-tracker/cliparse"
	"github.com/vote411/sign-tracker/middleware"
	"github.com/vote411/sign-tracker/models"
)

type ReportHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	store sessions.Store
}

func NewReportHandler(db *sql.DB, cfg cliparse.Config, store sessions.Store) *ReportHandler {
	return &ReportHandler{db: db, cfg: cfg, store: store}
}

// fetchReports loads all reports ordered by creation time descending
func fetchReports(db *sql.DB) ([]models.SignReport, error) {
	rows, err := db.Query(`
		SELECT id, sign_id, comment, reported_by_user_id, created_at
		FROM sign_reports
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []models.SignReport{}
	for rows.Next() {
		var rep models.SignReport
		if err := rows.Scan(&rep.ID, &rep.SignID, &rep.Comment, &rep.ReportedByUserID, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// CreateReport handles POST /signs/{id}/reports (no auth required)
// A signed-in caller is recorded as the reporter; anonymous reports are
// accepted too.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	signID := r.PathValue("id")
	if signID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sign_id is required")
		return
	}

	var req models.CreateReportRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Comment is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM signs WHERE id = $1)`, signID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query sign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Sign not found")
		return
	}

	// Optional attribution: this route is public, so the session is
	// consulted directly rather than through RequireAuth
	var reportedBy *string
	if userID := auth.UserID(h.store, r); userID != "" {
		reportedBy = &userID
	}

	reportID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO sign_reports (id, sign_id, comment, reported_by_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, reportID, signID, comment, reportedBy, time.Now())
	if err != nil {
		slog.Error("failed to insert report", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to report issue")
		return
	}

	slog.Info("sign reported", "report_id", reportID, "sign_id", signID)
	w.WriteHeader(http.StatusCreated)
}

// GetReports handles GET /reports
func (h *ReportHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	reports, err := fetchReports(h.db)
	if err != nil {
		slog.Error("failed to query reports", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reports)
}
