// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and driver error classification.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL runs unchanged on both sqlite (modernc.org/sqlite) and PostgreSQL
(lib/pq): ids and timestamps are generated in Go, never by the engine.

# Tables

The schema includes:

  - users: Accounts for volunteer sign-in
  - campaigns: Volunteer groups with unique invite codes
  - campaign_members: (user, campaign) membership edges
  - signs: Installed signs with location, geo metadata, and an
    up/taken-down lifecycle
  - sign_suggestions: Proposed locations awaiting conversion or deletion
  - sign_reports: Free-text issue flags against signs
  - adopt_a_sign_submissions: Public pledges to maintain a sign
  - app_config: Key/value settings (map cluster configuration)

# Relationships

	campaigns 1──* campaign_members
	campaigns 1──* signs

sign_reports reference signs by id without a foreign key; deleting a sign
leaves its reports behind as orphaned rows, which is accepted.

# Error Classification

IsUniqueViolation detects uniqueness conflicts across both drivers:

	if db.IsUniqueViolation(err) {
		// duplicate email, invite code, or membership
	}
*/
package db
