// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SignupRequest / LoginRequest: email, password
  - CreateSignRequest: campaign_id, coordinates, placed_at, optional notes,
    photo_url, and pre-resolved geo metadata
  - CreateSuggestionRequest: coordinates, optional notes
  - CreateAdoptionRequest: name, email/phone, coordinates, optional notes
  - CreateReportRequest: comment
  - CreateCampaignRequest: name
  - JoinCampaignRequest: invite_code
  - UpdateConfigRequest: partial map cluster configuration

# Response Types

Types for JSON responses:

  - CreateSignResponse: sign_id
  - CreateSuggestionResponse: suggestion_id
  - CreateAdoptionResponse: submission_id
  - CreateCampaignResponse: campaign_id, invite_code
  - DashboardResponse: merged dashboard reads
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: account with bcrypt password hash (never serialized)
  - Campaign: volunteer group with invite code
  - Sign: installed sign with up/taken-down lifecycle
  - SignSuggestion: proposed location awaiting conversion
  - SignReport: free-text issue flag against a sign
  - AdoptASignSubmission: public pledge to maintain a sign
  - MapClusterConfig: map display settings

# Constants

Sign filters:

	FilterAll  = "all"
	FilterUp   = "up"
	FilterDown = "down"

Map cluster config keys, defaults, and accepted ranges:

	max_cluster_radius         20-120 (default 40)
	disable_clustering_at_zoom 10-18  (default 15)
	default_map_zoom           8-18   (default 12)
	clustering_enabled         default true
*/
package models
