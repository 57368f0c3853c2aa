// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vote411/sign-tracker/cliparse"
	"github.com/vote411/sign-tracker/middleware"
	"github.com/vote411/sign-tracker/models"
)

type ConfigHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewConfigHandler(db *sql.DB, cfg cliparse.Config) *ConfigHandler {
	return &ConfigHandler{db: db, cfg: cfg}
}

// fetchConfig reads the four map cluster keys, substituting the documented
// default for each missing or non-numeric value.
func fetchConfig(db *sql.DB) (models.MapClusterConfig, error) {
	rows, err := db.Query(`
		SELECT key, value FROM app_config
		WHERE key IN ($1, $2, $3, $4)
	`, models.KeyClusteringEnabled, models.KeyMaxClusterRadius,
		models.KeyDisableClusteringAtZoom, models.KeyDefaultMapZoom)
	if err != nil {
		return models.MapClusterConfig{}, err
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.MapClusterConfig{}, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.MapClusterConfig{}, err
	}

	cfg := models.MapClusterConfig{
		ClusteringEnabled:       true,
		MaxClusterRadius:        models.DefaultMaxClusterRadius,
		DisableClusteringAtZoom: models.DefaultDisableClusteringAtZoom,
		DefaultMapZoom:          models.DefaultMapZoom,
	}

	if v, ok := values[models.KeyClusteringEnabled]; ok {
		cfg.ClusteringEnabled = v == "true"
	}
	if n, err := strconv.Atoi(values[models.KeyMaxClusterRadius]); err == nil {
		cfg.MaxClusterRadius = n
	}
	if n, err := strconv.Atoi(values[models.KeyDisableClusteringAtZoom]); err == nil {
		cfg.DisableClusteringAtZoom = n
	}
	if n, err := strconv.Atoi(values[models.KeyDefaultMapZoom]); err == nil {
		cfg.DefaultMapZoom = n
	}

	return cfg, nil
}

// setConfigValue upserts a single app_config row
func setConfigValue(db *sql.DB, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO app_config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// GetConfig handles GET /config (no auth)
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := fetchConfig(h.db)
	if err != nil {
		slog.Error("failed to query app config", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, cfg)
}

// UpdateConfig handles PUT /config
//
// Each present field is validated against its closed range and written
// independently. There is no transaction: a failure mid-way leaves the
// fields written so far updated and the rest untouched.
func (h *ConfigHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ClusteringEnabled != nil {
		value := "false"
		if *req.ClusteringEnabled {
			value = "true"
		}
		if err := setConfigValue(h.db, models.KeyClusteringEnabled, value); err != nil {
			slog.Error("failed to update config", "key", models.KeyClusteringEnabled, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update config")
			return
		}
	}

	if req.MaxClusterRadius != nil {
		n := *req.MaxClusterRadius
		if n < models.MinClusterRadius || n > models.MaxClusterRadius {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf(
				"maxClusterRadius must be an integer between %d and %d",
				models.MinClusterRadius, models.MaxClusterRadius))
			return
		}
		if err := setConfigValue(h.db, models.KeyMaxClusterRadius, strconv.Itoa(n)); err != nil {
			slog.Error("failed to update config", "key", models.KeyMaxClusterRadius, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update config")
			return
		}
	}

	if req.DisableClusteringAtZoom != nil {
		n := *req.DisableClusteringAtZoom
		if n < models.MinDisableZoom || n > models.MaxDisableZoom {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf(
				"disableClusteringAtZoom must be an integer between %d and %d",
				models.MinDisableZoom, models.MaxDisableZoom))
			return
		}
		if err := setConfigValue(h.db, models.KeyDisableClusteringAtZoom, strconv.Itoa(n)); err != nil {
			slog.Error("failed to update config", "key", models.KeyDisableClusteringAtZoom, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update config")
			return
		}
	}

	if req.DefaultMapZoom != nil {
		n := *req.DefaultMapZoom
		if n < models.MinMapZoom || n > models.MaxMapZoom {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf(
				"defaultMapZoom must be an integer between %d and %d",
				models.MinMapZoom, models.MaxMapZoom))
			return
		}
		if err := setConfigValue(h.db, models.KeyDefaultMapZoom, strconv.Itoa(n)); err != nil {
			slog.Error("failed to update config", "key", models.KeyDefaultMapZoom, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update config")
			return
		}
	}

	slog.Info("map cluster config updated")
	w.WriteHeader(http.StatusNoContent)
}
