// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Sign Tracker API server.

Sign Tracker is a civic-volunteer coordination service for election-sign
placement. Volunteers sign in, record installed signs on a map, mark signs
taken down, and manage campaigns (volunteer groups) via invite codes. The
public can view signs, suggest locations, pledge to adopt a sign, and report
issues, all without an account.

# Starting the Server

The server runs against sqlite by default and needs a session secret:

	SESSION_SECRET=... go run main.go

Or against PostgreSQL:

	SESSION_SECRET=... go run main.go -t postgres -d "postgres://..."

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): Secret for session cookies

Optional settings:

  - PORT (-p): Server port (default: 8340)
  - DATABASE_URL (-d): Connection string (default: file:signs.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - GEOCODE_BASE_URL (-geocode-url): Reverse geocoder (default: Nominatim)
  - GEOCODE_USER_AGENT (-geocode-agent): Identifier sent to the geocoder
  - UPLOAD_DIR (-uploads): Photo storage directory (default: uploads)
  - PUBLIC_BASE_URL (-base-url): Prefix for photo URLs (default: relative)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (signs, suggestions, adoptions,
    reports, campaigns, config, accounts, dashboard)
  - router: Route definitions using Go 1.22+ routing, with the public
    allow-list and session-protected routes
  - middleware: Session auth, logging, CORS, JSON helpers
  - models: Request/response and domain types
  - auth: Password hashing, invite codes, session helpers
  - geocode: Best-effort Nominatim reverse geocoding
  - storage: Sign photo uploads on local disk
  - db: Schema creation and driver error classification
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
