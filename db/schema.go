// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is restricted to the dialect both drivers accept: row ids are
// generated in Go, timestamps are passed explicitly, and column types stick
// to TEXT / DOUBLE PRECISION / TIMESTAMP.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Campaigns (volunteer groups)
CREATE TABLE IF NOT EXISTS campaigns (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    invite_code TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS campaign_members (
    user_id TEXT NOT NULL,
    campaign_id TEXT NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (user_id, campaign_id)
);

-- Installed signs
CREATE TABLE IF NOT EXISTS signs (
    id TEXT PRIMARY KEY,
    campaign_id TEXT NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
    placed_by_user_id TEXT NOT NULL,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    placed_at TIMESTAMP NOT NULL,
    taken_down_at TIMESTAMP,
    notes TEXT,
    photo_url TEXT,
    nearest_intersection TEXT,
    zipcode TEXT,
    county TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signs_campaign_id ON signs(campaign_id);
CREATE INDEX IF NOT EXISTS idx_signs_placed_at ON signs(placed_at);

-- Suggested locations (not yet installed)
CREATE TABLE IF NOT EXISTS sign_suggestions (
    id TEXT PRIMARY KEY,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    notes TEXT,
    nearest_intersection TEXT,
    zipcode TEXT,
    county TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Issue reports. No foreign key on sign_id: reports survive sign deletion
-- as orphaned rows.
CREATE TABLE IF NOT EXISTS sign_reports (
    id TEXT PRIMARY KEY,
    sign_id TEXT NOT NULL,
    comment TEXT NOT NULL,
    reported_by_user_id TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sign_reports_sign_id ON sign_reports(sign_id);

-- Adopt-a-sign pledges
CREATE TABLE IF NOT EXISTS adopt_a_sign_submissions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    phone TEXT,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    notes TEXT,
    nearest_intersection TEXT,
    zipcode TEXT,
    county TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Generic settings (map cluster configuration)
CREATE TABLE IF NOT EXISTS app_config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
