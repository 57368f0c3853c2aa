// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vote411/sign-tracker/cliparse"
	"github.com/vote411/sign-tracker/geocode"
	"github.com/vote411/sign-tracker/middleware"
	"github.com/vote411/sign-tracker/models"
)

type SuggestionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	geo *geocode.Client
}

func NewSuggestionHandler(db *sql.DB, cfg cliparse.Config, geo *geocode.Client) *SuggestionHandler {
	return &SuggestionHandler{db: db, cfg: cfg, geo: geo}
}

// fetchSuggestions loads all suggestions ordered by creation time descending
func fetchSuggestions(db *sql.DB) ([]models.SignSuggestion, error) {
	rows, err := db.Query(`
		SELECT id, latitude, longitude, notes,
		       nearest_intersection, zipcode, county, created_at
		FROM sign_suggestions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suggestions := []models.SignSuggestion{}
	for rows.Next() {
		var s models.SignSuggestion
		if err := rows.Scan(
			&s.ID, &s.Latitude, &s.Longitude, &s.Notes,
			&s.NearestIntersection, &s.Zipcode, &s.County, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

// CreateSuggestion handles POST /suggestions (no auth)
// Always geocodes fresh.
func (h *SuggestionHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSuggestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !validCoordinates(req.Latitude, req.Longitude) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "latitude/longitude out of range")
		return
	}

	geo := h.geo.Reverse(r.Context(), req.Latitude, req.Longitude)

	suggestionID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO sign_suggestions (id, latitude, longitude, notes,
		                              nearest_intersection, zipcode, county, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, suggestionID, req.Latitude, req.Longitude, req.Notes,
		geo.NearestIntersection, geo.Zipcode, geo.County, time.Now())
	if err != nil {
		slog.Error("failed to insert suggestion", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to suggest location")
		return
	}

	slog.Info("suggestion created", "suggestion_id", suggestionID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSuggestionResponse{
		SuggestionID: suggestionID,
	})
}

// GetSuggestions handles GET /suggestions (no auth)
func (h *SuggestionHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := fetchSuggestions(h.db)
	if err != nil {
		slog.Error("failed to query suggestions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, suggestions)
}

// DeleteSuggestion handles DELETE /suggestions/{id}
func (h *SuggestionHandler) DeleteSuggestion(w http.ResponseWriter, r *http.Request) {
	suggestionID := r.PathValue("id")
	if suggestionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "suggestion_id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM sign_suggestions WHERE id = $1`, suggestionID)
	if err != nil {
		slog.Error("failed to delete suggestion", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete suggestion")
		return
	}

	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Suggestion not found")
		return
	}

	slog.Info("suggestion deleted", "suggestion_id", suggestionID)
	w.WriteHeader(http.StatusNoContent)
}

// ConvertToSign handles POST /suggestions/{id}/convert
//
// Each step aborts the whole operation on failure: (1) fetch the
// suggestion, (2) resolve the caller's default campaign, (3) insert a sign
// carrying over the suggestion's coordinates, notes, and geo metadata
// without re-geocoding, (4) delete the suggestion. A failure at step 3
// leaves the suggestion untouched. A failure at step 4 is reported even
// though the sign already exists; there is no compensating delete or retry.
func (h *SuggestionHandler) ConvertToSign(w http.ResponseWriter, r *http.Request) {
	suggestionID := r.PathValue("id")
	if suggestionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "suggestion_id is required")
		return
	}

	var s models.SignSuggestion
	err := h.db.QueryRow(`
		SELECT id, latitude, longitude, notes,
		       nearest_intersection, zipcode, county, created_at
		FROM sign_suggestions
		WHERE id = $1
	`, suggestionID).Scan(
		&s.ID, &s.Latitude, &s.Longitude, &s.Notes,
		&s.NearestIntersection, &s.Zipcode, &s.County, &s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Suggestion not found")
		return
	}
	if err != nil {
		slog.Error("failed to query suggestion", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	userID := middleware.UserID(r)
	campaignID, err := defaultCampaignForUser(h.db, userID)
	if err != nil {
		slog.Error("failed to resolve default campaign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve campaign")
		return
	}

	signID, err := insertSign(h.db, userID, models.CreateSignRequest{
		CampaignID: campaignID,
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		PlacedAt:   time.Now(),
		Notes:      s.Notes,
	}, geocode.Result{
		NearestIntersection: s.NearestIntersection,
		Zipcode:             s.Zipcode,
		County:              s.County,
	})
	if err != nil {
		slog.Error("failed to insert sign from suggestion", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create sign")
		return
	}

	if _, err := h.db.Exec(`DELETE FROM sign_suggestions WHERE id = $1`, suggestionID); err != nil {
		// The sign exists but the suggestion remains; reported as a failure
		// rather than masked
		slog.Error("failed to delete converted suggestion", "error", err,
			"suggestion_id", suggestionID, "sign_id", signID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove suggestion")
		return
	}

	slog.Info("suggestion converted", "suggestion_id", suggestionID, "sign_id", signID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSignResponse{
		SignID: signID,
	})
}
