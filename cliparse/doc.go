// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8340)
  - DatabaseURL: Connection string (default: file:signs.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSecret: Secret for session cookies (required)
  - GeocodeBaseURL: Reverse geocoder base URL (default: Nominatim)
  - GeocodeUserAgent: Client identifier sent with geocode requests
  - UploadDir: Photo storage directory (default: uploads)
  - PublicBaseURL: Prefix prepended to stored photo URLs

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-session-secret Session cookie secret
	-geocode-url    Reverse geocoder base URL
	-geocode-agent  Geocoder User-Agent
	-uploads        Photo upload directory
	-base-url       Public base URL

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	SESSION_SECRET     → -session-secret
	GEOCODE_BASE_URL   → -geocode-url
	GEOCODE_USER_AGENT → -geocode-agent
	UPLOAD_DIR         → -uploads
	PUBLIC_BASE_URL    → -base-url

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - SESSION_SECRET must be provided
  - DATABASE_URL must be provided when the type is postgres
*/
package cliparse
