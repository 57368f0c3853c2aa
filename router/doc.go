// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Sign Tracker API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, store, geo)

# Public Endpoints

Anyone can view the map and contribute suggestions, adoptions, and reports:

	GET  /health
	GET  /signs                     - All signs (?filter=all|up|down)
	GET  /suggestions               - Suggested locations
	POST /suggestions               - Suggest a location
	GET  /adoptions                 - Adoption pledges
	POST /adoptions                 - Pledge to adopt a sign
	POST /signs/{id}/reports        - Report an issue
	GET  /campaigns/by-invite/{code} - Preview a campaign before joining
	GET  /config                    - Map cluster configuration
	GET  /uploads/...               - Stored sign photos
	POST /auth/signup, /auth/login

# Authenticated Endpoints

Everything else requires a login session (middleware.RequireAuth):

	GET    /my/signs, /my/campaigns, /reports, /dashboard
	POST   /signs, /signs/{id}/taken-down, /signs/{id}/photo
	PUT    /signs/{id}/photo
	DELETE /signs/{id}, /suggestions/{id}
	POST   /suggestions/{id}/convert
	POST   /campaigns, /campaigns/join, /campaigns/default
	PUT    /config
	POST   /auth/logout

# Handler Initialization

The router creates handler instances with dependency injection:

	signHandler := handlers.NewSignHandler(db, cfg, geo)
	reportHandler := handlers.NewReportHandler(db, cfg, store)

Handlers receive the database connection, configuration, and where needed
the session store and geocoding client.
*/
package router
