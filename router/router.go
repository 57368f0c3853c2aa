// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/vote411/sign-tracker/cliparse"
	"github.com/vote411/sign-tracker/geocode"
	"github.com/vote411/sign-tracker/handlers"
	"github.com/vote411/sign-tracker/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, store *sessions.CookieStore, geo *geocode.Client) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	signHandler := handlers.NewSignHandler(db, cfg, geo)
	suggestionHandler := handlers.NewSuggestionHandler(db, cfg, geo)
	adoptionHandler := handlers.NewAdoptionHandler(db, cfg, geo)
	reportHandler := handlers.NewReportHandler(db, cfg, store)
	campaignHandler := handlers.NewCampaignHandler(db, cfg)
	configHandler := handlers.NewConfigHandler(db, cfg)
	accountHandler := handlers.NewAccountHandler(db, cfg, store)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)

	logged := middleware.WithLogging
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(store, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/signup", logged(accountHandler.Signup))
	mux.HandleFunc("POST /auth/login", logged(accountHandler.Login))
	mux.HandleFunc("POST /auth/logout", authed(accountHandler.Logout))

	// Signs: the map view is public, everything mutating requires a session
	mux.HandleFunc("GET /signs", logged(signHandler.GetSignsPublic))
	mux.HandleFunc("GET /my/signs", authed(signHandler.GetSignsForUser))
	mux.HandleFunc("POST /signs", authed(signHandler.CreateSign))
	mux.HandleFunc("POST /signs/{id}/taken-down", authed(signHandler.MarkTakenDown))
	mux.HandleFunc("PUT /signs/{id}/photo", authed(signHandler.UpdatePhoto))
	mux.HandleFunc("POST /signs/{id}/photo", authed(signHandler.UploadPhoto))
	mux.HandleFunc("DELETE /signs/{id}", authed(signHandler.DeleteSign))

	// Issue reports (anyone can report; reviewing requires a session)
	mux.HandleFunc("POST /signs/{id}/reports", logged(reportHandler.CreateReport))
	mux.HandleFunc("GET /reports", authed(reportHandler.GetReports))

	// Suggested locations
	mux.HandleFunc("POST /suggestions", logged(suggestionHandler.CreateSuggestion))
	mux.HandleFunc("GET /suggestions", logged(suggestionHandler.GetSuggestions))
	mux.HandleFunc("DELETE /suggestions/{id}", authed(suggestionHandler.DeleteSuggestion))
	mux.HandleFunc("POST /suggestions/{id}/convert", authed(suggestionHandler.ConvertToSign))

	// Adopt-a-sign (public by design, contact info included)
	mux.HandleFunc("POST /adoptions", logged(adoptionHandler.CreateAdoption))
	mux.HandleFunc("GET /adoptions", logged(adoptionHandler.GetAdoptions))

	// Campaigns and invites
	mux.HandleFunc("POST /campaigns", authed(campaignHandler.CreateCampaign))
	mux.HandleFunc("GET /my/campaigns", authed(campaignHandler.GetCampaignsForUser))
	mux.HandleFunc("GET /campaigns/by-invite/{code}", logged(campaignHandler.GetByInviteCode))
	mux.HandleFunc("POST /campaigns/join", authed(campaignHandler.JoinByInviteCode))
	mux.HandleFunc("POST /campaigns/default", authed(campaignHandler.GetOrCreateDefault))

	// Map cluster configuration
	mux.HandleFunc("GET /config", logged(configHandler.GetConfig))
	mux.HandleFunc("PUT /config", authed(configHandler.UpdateConfig))

	// Dashboard (merged reads)
	mux.HandleFunc("GET /dashboard", authed(dashboardHandler.GetDashboard))

	// Stored sign photos
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("sign-tracker API v1"))
	})

	return mux
}
