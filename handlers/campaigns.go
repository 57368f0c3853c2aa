// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vote411/sign-tracker/auth"
	"github.com/vote411/sign-tracker/cliparse"
	"github.com/vote411/sign-tracker/db"
	"github.com/vote411/sign-tracker/middleware"
	"github.com/vote411/sign-tracker/models"
)

type CampaignHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCampaignHandler(dbConn *sql.DB, cfg cliparse.Config) *CampaignHandler {
	return &CampaignHandler{db: dbConn, cfg: cfg}
}

// createCampaign inserts a campaign and adds the creator as its first
// member. If the membership insert fails the campaign is left behind with
// no members; that gap is reported, not remediated.
func createCampaign(dbConn *sql.DB, userID, name string) (models.Campaign, error) {
	inviteCode, err := auth.NewInviteCode()
	if err != nil {
		return models.Campaign{}, err
	}

	c := models.Campaign{
		ID:         uuid.NewString(),
		Name:       name,
		InviteCode: inviteCode,
		CreatedAt:  time.Now(),
	}

	_, err = dbConn.Exec(`
		INSERT INTO campaigns (id, name, invite_code, created_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.InviteCode, c.CreatedAt)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("failed to insert campaign: %w", err)
	}

	_, err = dbConn.Exec(`
		INSERT INTO campaign_members (user_id, campaign_id, created_at)
		VALUES ($1, $2, $3)
	`, userID, c.ID, time.Now())
	if err != nil {
		return models.Campaign{}, fmt.Errorf("failed to insert membership: %w", err)
	}

	return c, nil
}

// defaultCampaignForUser returns the id of the user's first campaign
// (ordered by name), creating a "My signs" campaign with the user as sole
// member when none exists.
func defaultCampaignForUser(dbConn *sql.DB, userID string) (string, error) {
	var campaignID string
	err := dbConn.QueryRow(`
		SELECT c.id
		FROM campaigns c
		JOIN campaign_members m ON m.campaign_id = c.id
		WHERE m.user_id = $1
		ORDER BY c.name
		LIMIT 1
	`, userID).Scan(&campaignID)
	if err == nil {
		return campaignID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	c, err := createCampaign(dbConn, userID, models.DefaultCampaignName)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// CreateCampaign handles POST /campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCampaignRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := createCampaign(h.db, middleware.UserID(r), name)
	if err != nil {
		slog.Error("failed to create campaign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create campaign")
		return
	}

	slog.Info("campaign created", "campaign_id", c.ID, "name", c.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCampaignResponse{
		CampaignID: c.ID,
		InviteCode: c.InviteCode,
	})
}

// GetCampaignsForUser handles GET /my/campaigns
func (h *CampaignHandler) GetCampaignsForUser(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT c.id, c.name, c.invite_code, c.created_at
		FROM campaigns c
		JOIN campaign_members m ON m.campaign_id = c.id
		WHERE m.user_id = $1
		ORDER BY c.name
	`, middleware.UserID(r))
	if err != nil {
		slog.Error("failed to query campaigns", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.InviteCode, &c.CreatedAt); err != nil {
			slog.Error("failed to scan campaign", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read campaigns", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, campaigns)
}

// GetByInviteCode handles GET /campaigns/by-invite/{code} (no auth)
// Used by the join page to preview the campaign before joining.
func (h *CampaignHandler) GetByInviteCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.PathValue("code"))
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invite code is required")
		return
	}

	var c models.Campaign
	err := h.db.QueryRow(`
		SELECT id, name, invite_code, created_at
		FROM campaigns
		WHERE invite_code = $1
	`, code).Scan(&c.ID, &c.Name, &c.InviteCode, &c.CreatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Invalid or expired invite code")
		return
	}
	if err != nil {
		slog.Error("failed to query campaign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, c)
}

// JoinByInviteCode handles POST /campaigns/join
func (h *CampaignHandler) JoinByInviteCode(w http.ResponseWriter, r *http.Request) {
	var req models.JoinCampaignRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	code := strings.TrimSpace(req.InviteCode)
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invite_code is required")
		return
	}

	var campaignID string
	err := h.db.QueryRow(`SELECT id FROM campaigns WHERE invite_code = $1`, code).Scan(&campaignID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Invalid or expired invite code")
		return
	}
	if err != nil {
		slog.Error("failed to query campaign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	userID := middleware.UserID(r)
	_, err = h.db.Exec(`
		INSERT INTO campaign_members (user_id, campaign_id, created_at)
		VALUES ($1, $2, $3)
	`, userID, campaignID, time.Now())
	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Already in this campaign")
			return
		}
		slog.Error("failed to insert membership", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join campaign")
		return
	}

	slog.Info("campaign joined", "campaign_id", campaignID, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// GetOrCreateDefault handles POST /campaigns/default
// Returns the caller's first campaign, creating "My signs" if needed.
// Calling it twice creates at most one campaign.
func (h *CampaignHandler) GetOrCreateDefault(w http.ResponseWriter, r *http.Request) {
	campaignID, err := defaultCampaignForUser(h.db, middleware.UserID(r))
	if err != nil {
		slog.Error("failed to resolve default campaign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve campaign")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DefaultCampaignResponse{
		CampaignID: campaignID,
	})
}
