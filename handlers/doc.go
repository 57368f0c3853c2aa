// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Sign Tracker API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SignHandler: Sign lifecycle (create, list, take down, photo, delete)
  - SuggestionHandler: Suggested locations and conversion to signs
  - AdoptionHandler: Adopt-a-sign submissions
  - ReportHandler: Issue reports against signs
  - CampaignHandler: Campaigns, memberships, invite codes
  - ConfigHandler: Map cluster configuration
  - AccountHandler: Signup, login, logout
  - DashboardHandler: Merged dashboard reads

Handlers are created via constructor functions with dependency injection:

	signHandler := handlers.NewSignHandler(db, cfg, geo)

# Sign Lifecycle

A sign is up until marked taken down; the timestamp is set unconditionally
and never cleared, so the transition is one-way:

	POST   /signs                  → CreateSign
	POST   /signs/{id}/taken-down  → MarkTakenDown
	PUT    /signs/{id}/photo       → UpdatePhoto (URL replace)
	POST   /signs/{id}/photo       → UploadPhoto (multipart)
	DELETE /signs/{id}             → DeleteSign

Listing supports ?filter=all|up|down over taken_down_at nullity, ordered by
placed_at descending. GET /signs is public; GET /my/signs restricts to the
caller's campaign memberships.

# Suggestion Conversion

Converting a suggestion into a sign is a sequence of independent steps with
no transaction: fetch suggestion, resolve the caller's default campaign
(creating "My signs" if needed), insert the sign carrying the suggestion's
geo metadata, delete the suggestion. The operation aborts on the first
failure; a step-4 failure leaves both the new sign and the stale suggestion
behind, which is reported rather than masked.

# Authentication

Routes that mutate campaign-scoped data are wrapped in
middleware.RequireAuth; handlers read the caller with middleware.UserID(r).
Report creation is public but attributes a signed-in caller via the session
store directly.

# Shared Queries

The fetch* functions (fetchSigns, fetchSuggestions, fetchAdoptions,
fetchReports, fetchConfig) back both the individual list endpoints and the
concurrent dashboard fan-out.
*/
package handlers
