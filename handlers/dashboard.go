// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sync"

	"github.com/vote411/sign-tracker/cliparse"
	"github.com/vote411/sign-tracker/middleware"
	"github.com/vote411/sign-tracker/models"
)

type DashboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDashboardHandler(db *sql.DB, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{db: db, cfg: cfg}
}

// GetDashboard handles GET /dashboard
//
// The five reads behind the volunteer dashboard are independent, so they
// run concurrently and merge only after all resolve. The first error fails
// the whole request.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var (
		signs       []models.Sign
		suggestions []models.SignSuggestion
		adoptions   []models.AdoptASignSubmission
		reports     []models.SignReport
		clusterCfg  models.MapClusterConfig

		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		var err error
		if signs, err = fetchSigns(h.db, models.FilterAll, userID); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if suggestions, err = fetchSuggestions(h.db); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if adoptions, err = fetchAdoptions(h.db); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if reports, err = fetchReports(h.db); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if clusterCfg, err = fetchConfig(h.db); err != nil {
			fail(err)
		}
	}()
	wg.Wait()

	if firstErr != nil {
		slog.Error("failed to load dashboard", "error", firstErr)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	reportsBySign := map[string][]models.SignReport{}
	for _, rep := range reports {
		reportsBySign[rep.SignID] = append(reportsBySign[rep.SignID], rep)
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		Signs:         signs,
		Suggestions:   suggestions,
		Adoptions:     adoptions,
		ReportsBySign: reportsBySign,
		Config:        clusterCfg,
	})
}
