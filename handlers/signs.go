// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/vote411/sign-tracker/cliparse"
	"github.com/vote411/sign-tracker/geocode"
	"github.com/vote411/sign-tracker/middleware"
	"github.com/vote411/sign-tracker/models"
	"github.com/vote411/sign-tracker/storage"
)

type SignHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	geo *geocode.Client
}

func NewSignHandler(db *sql.DB, cfg cliparse.Config, geo *geocode.Client) *SignHandler {
	return &SignHandler{db: db, cfg: cfg, geo: geo}
}

// parseFilter reads the ?filter= query parameter, defaulting to all
func parseFilter(r *http.Request) (string, error) {
	filter := r.URL.Query().Get("filter")
	switch filter {
	case "":
		return models.FilterAll, nil
	case models.FilterAll, models.FilterUp, models.FilterDown:
		return filter, nil
	default:
		return "", fmt.Errorf("unknown filter %q", filter)
	}
}

// fetchSigns loads signs ordered by placed_at descending. An empty userID
// means the public view; otherwise results are restricted to campaigns the
// user belongs to (empty when the user has no memberships).
func fetchSigns(db *sql.DB, filter, userID string) ([]models.Sign, error) {
	query := `
		SELECT id, campaign_id, placed_by_user_id, latitude, longitude,
		       placed_at, taken_down_at, notes, photo_url,
		       nearest_intersection, zipcode, county, created_at
		FROM signs
	`
	args := []interface{}{}
	where := ""

	if userID != "" {
		where = " WHERE campaign_id IN (SELECT campaign_id FROM campaign_members WHERE user_id = $1)"
		args = append(args, userID)
	}

	switch filter {
	case models.FilterUp:
		if where == "" {
			where = " WHERE taken_down_at IS NULL"
		} else {
			where += " AND taken_down_at IS NULL"
		}
	case models.FilterDown:
		if where == "" {
			where = " WHERE taken_down_at IS NOT NULL"
		} else {
			where += " AND taken_down_at IS NOT NULL"
		}
	}

	rows, err := db.Query(query+where+" ORDER BY placed_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signs := []models.Sign{}
	for rows.Next() {
		var s models.Sign
		if err := rows.Scan(
			&s.ID, &s.CampaignID, &s.PlacedByUserID, &s.Latitude, &s.Longitude,
			&s.PlacedAt, &s.TakenDownAt, &s.Notes, &s.PhotoURL,
			&s.NearestIntersection, &s.Zipcode, &s.County, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.PlacedAgo = humanize.Time(s.PlacedAt)
		signs = append(signs, s)
	}
	return signs, rows.Err()
}

// insertSign creates a sign row with already-resolved geo metadata.
// Shared by CreateSign and the suggestion conversion workflow.
func insertSign(db *sql.DB, userID string, req models.CreateSignRequest, geo geocode.Result) (string, error) {
	signID := uuid.NewString()

	placedAt := req.PlacedAt
	if placedAt.IsZero() {
		placedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO signs (id, campaign_id, placed_by_user_id, latitude, longitude,
		                   placed_at, notes, photo_url,
		                   nearest_intersection, zipcode, county, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, signID, req.CampaignID, userID, req.Latitude, req.Longitude,
		placedAt, req.Notes, req.PhotoURL,
		geo.NearestIntersection, geo.Zipcode, geo.County, time.Now())
	if err != nil {
		return "", err
	}
	return signID, nil
}

// GetSignsPublic handles GET /signs (no auth)
func (h *SignHandler) GetSignsPublic(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	signs, err := fetchSigns(h.db, filter, "")
	if err != nil {
		slog.Error("failed to query signs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, signs)
}

// GetSignsForUser handles GET /my/signs
// Restricted to signs in campaigns the caller belongs to; a user with no
// memberships gets an empty list, not an error.
func (h *SignHandler) GetSignsForUser(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	signs, err := fetchSigns(h.db, filter, middleware.UserID(r))
	if err != nil {
		slog.Error("failed to query signs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, signs)
}

// CreateSign handles POST /signs
func (h *SignHandler) CreateSign(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSignRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.CampaignID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "campaign_id is required")
		return
	}
	if !validCoordinates(req.Latitude, req.Longitude) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "latitude/longitude out of range")
		return
	}

	// Pre-resolved geo metadata skips the geocode call (the conversion path
	// carries the suggestion's values over)
	geo := geocode.Result{
		NearestIntersection: req.NearestIntersection,
		Zipcode:             req.Zipcode,
		County:              req.County,
	}
	if req.NearestIntersection == nil && req.Zipcode == nil && req.County == nil {
		geo = h.geo.Reverse(r.Context(), req.Latitude, req.Longitude)
	}

	signID, err := insertSign(h.db, middleware.UserID(r), req, geo)
	if err != nil {
		slog.Error("failed to insert sign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create sign")
		return
	}

	slog.Info("sign created", "sign_id", signID, "campaign_id", req.CampaignID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSignResponse{
		SignID: signID,
	})
}

// MarkTakenDown handles POST /signs/{id}/taken-down
// Sets taken_down_at unconditionally: calling it twice just overwrites the
// timestamp, so the sign never reappears as up.
func (h *SignHandler) MarkTakenDown(w http.ResponseWriter, r *http.Request) {
	signID := r.PathValue("id")
	if signID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sign_id is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE signs SET taken_down_at = $1 WHERE id = $2
	`, time.Now(), signID)
	if err != nil {
		slog.Error("failed to mark sign taken down", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update sign")
		return
	}

	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Sign not found")
		return
	}

	slog.Info("sign taken down", "sign_id", signID)
	w.WriteHeader(http.StatusNoContent)
}

// UpdatePhoto handles PUT /signs/{id}/photo
func (h *SignHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	signID := r.PathValue("id")
	if signID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sign_id is required")
		return
	}

	var req models.UpdateSignPhotoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.PhotoURL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "photo_url is required")
		return
	}

	res, err := h.db.Exec(`UPDATE signs SET photo_url = $1 WHERE id = $2`, req.PhotoURL, signID)
	if err != nil {
		slog.Error("failed to update sign photo", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update sign")
		return
	}

	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Sign not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto handles POST /signs/{id}/photo (multipart form, field "photo")
// Saves the file to local storage and stores the resulting URL on the sign.
func (h *SignHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	signID := r.PathValue("id")
	if signID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sign_id is required")
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

	if err := r.ParseMultipartForm(storage.MaxPhotoSize); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	_, fh, err := r.FormFile("photo")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "photo file is required")
		return
	}

	photoURL, err := storage.SaveSignPhoto(h.cfg.UploadDir, signID, fh)
	if err != nil {
		if errors.Is(err, storage.ErrPhotoTooLarge) || errors.Is(err, storage.ErrPhotoBadType) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to save sign photo", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save photo")
		return
	}
	photoURL = h.cfg.PublicBaseURL + photoURL

	if _, err := h.db.Exec(`UPDATE signs SET photo_url = $1 WHERE id = $2`, photoURL, signID); err != nil {
		slog.Error("failed to update sign photo", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update sign")
		return
	}

	slog.Info("sign photo uploaded", "sign_id", signID)

	middleware.JSONResponse(w, http.StatusOK, models.UploadPhotoResponse{
		PhotoURL: photoURL,
	})
}

// DeleteSign handles DELETE /signs/{id}
// Hard delete. Associated reports are left as orphaned rows.
func (h *SignHandler) DeleteSign(w http.ResponseWriter, r *http.Request) {
	signID := r.PathValue("id")
	if signID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sign_id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM signs WHERE id = $1`, signID)
	if err != nil {
		slog.Error("failed to delete sign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete sign")
		return
	}

	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Sign not found")
		return
	}

	slog.Info("sign deleted", "sign_id", signID)
	w.WriteHeader(http.StatusNoContent)
}

// validCoordinates rejects out-of-range latitude/longitude pairs
func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
