// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/vote411/sign-tracker/cliparse"
	"github.com/vote411/sign-tracker/geocode"
	"github.com/vote411/sign-tracker/middleware"
	"github.com/vote411/sign-tracker/models"
)

type AdoptionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	geo *geocode.Client
}

func NewAdoptionHandler(db *sql.DB, cfg cliparse.Config, geo *geocode.Client) *AdoptionHandler {
	return &AdoptionHandler{db: db, cfg: cfg, geo: geo}
}

// fetchAdoptions loads all submissions ordered by creation time descending
func fetchAdoptions(db *sql.DB) ([]models.AdoptASignSubmission, error) {
	rows, err := db.Query(`
		SELECT id, name, email, phone, latitude, longitude, notes,
		       nearest_intersection, zipcode, county, created_at
		FROM adopt_a_sign_submissions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := []models.AdoptASignSubmission{}
	for rows.Next() {
		var a models.AdoptASignSubmission
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Phone, &a.Latitude, &a.Longitude, &a.Notes,
			&a.NearestIntersection, &a.Zipcode, &a.County, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.SubmittedAgo = humanize.Time(a.CreatedAt)
		submissions = append(submissions, a)
	}
	return submissions, rows.Err()
}

// CreateAdoption handles POST /adoptions (no auth)
// A pledge to maintain a sign: name is required, along with at least one of
// email or phone. Submissions are append-only records for manual follow-up.
func (h *AdoptionHandler) CreateAdoption(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdoptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name is required")
		return
	}

	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email or phone is required")
		return
	}

	if !validCoordinates(req.Latitude, req.Longitude) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "latitude/longitude out of range")
		return
	}

	var emailPtr, phonePtr, notesPtr *string
	if email != "" {
		emailPtr = &email
	}
	if phone != "" {
		phonePtr = &phone
	}
	if req.Notes != nil {
		if notes := strings.TrimSpace(*req.Notes); notes != "" {
			notesPtr = &notes
		}
	}

	geo := h.geo.Reverse(r.Context(), req.Latitude, req.Longitude)

	submissionID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO adopt_a_sign_submissions (id, name, email, phone,
		                                      latitude, longitude, notes,
		                                      nearest_intersection, zipcode, county, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, submissionID, name, emailPtr, phonePtr,
		req.Latitude, req.Longitude, notesPtr,
		geo.NearestIntersection, geo.Zipcode, geo.County, time.Now())
	if err != nil {
		slog.Error("failed to insert adoption submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit adoption")
		return
	}

	slog.Info("adoption submitted", "submission_id", submissionID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateAdoptionResponse{
		SubmissionID: submissionID,
	})
}

// GetAdoptions handles GET /adoptions (no auth)
// The list is public by design, contact info included, for campaign staff
// follow-up.
func (h *AdoptionHandler) GetAdoptions(w http.ResponseWriter, r *http.Request) {
	submissions, err := fetchAdoptions(h.db)
	if err != nil {
		slog.Error("failed to query adoption submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, submissions)
}
