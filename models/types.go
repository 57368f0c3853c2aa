package models

import "time"

// Sign list filters
const (
	FilterAll  = "all"
	FilterUp   = "up"
	FilterDown = "down"
)

// app_config keys
const (
	KeyClusteringEnabled       = "clustering_enabled"
	KeyMaxClusterRadius        = "max_cluster_radius"
	KeyDisableClusteringAtZoom = "disable_clustering_at_zoom"
	KeyDefaultMapZoom          = "default_map_zoom"
)

// Map cluster defaults and accepted ranges
const (
	DefaultMaxClusterRadius        = 40
	DefaultDisableClusteringAtZoom = 15
	DefaultMapZoom                 = 12

	MinClusterRadius = 20
	MaxClusterRadius = 120
	MinDisableZoom   = 10
	MaxDisableZoom   = 18
	MinMapZoom       = 8
	MaxMapZoom       = 18
)

// DefaultCampaignName is used when a sign is created by a user with no
// campaign memberships.
const DefaultCampaignName = "My signs"

// Request types

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateSignRequest struct {
	CampaignID string    `json:"campaign_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	PlacedAt   time.Time `json:"placed_at"`
	Notes      *string   `json:"notes,omitempty"`
	PhotoURL   *string   `json:"photo_url,omitempty"`

	// Pre-resolved geo metadata. When any field is present the server skips
	// the reverse-geocode call (suggestion conversion carries these over).
	NearestIntersection *string `json:"nearest_intersection,omitempty"`
	Zipcode             *string `json:"zipcode,omitempty"`
	County              *string `json:"county,omitempty"`
}

type UpdateSignPhotoRequest struct {
	PhotoURL string `json:"photo_url"`
}

type CreateSuggestionRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     *string `json:"notes,omitempty"`
}

type CreateAdoptionRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     *string `json:"notes,omitempty"`
}

type CreateReportRequest struct {
	Comment string `json:"comment"`
}

type CreateCampaignRequest struct {
	Name string `json:"name"`
}

type JoinCampaignRequest struct {
	InviteCode string `json:"invite_code"`
}

// UpdateConfigRequest carries a partial map cluster configuration. Absent
// fields are left untouched.
type UpdateConfigRequest struct {
	ClusteringEnabled       *bool `json:"clustering_enabled,omitempty"`
	MaxClusterRadius        *int  `json:"max_cluster_radius,omitempty"`
	DisableClusteringAtZoom *int  `json:"disable_clustering_at_zoom,omitempty"`
	DefaultMapZoom          *int  `json:"default_map_zoom,omitempty"`
}

// Response types

type SignupResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type CreateSignResponse struct {
	SignID string `json:"sign_id"`
}

type CreateSuggestionResponse struct {
	SuggestionID string `json:"suggestion_id"`
}

type CreateAdoptionResponse struct {
	SubmissionID string `json:"submission_id"`
}

type CreateCampaignResponse struct {
	CampaignID string `json:"campaign_id"`
	InviteCode string `json:"invite_code"`
}

type DefaultCampaignResponse struct {
	CampaignID string `json:"campaign_id"`
}

type UploadPhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Campaign struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

type CampaignMember struct {
	UserID     string    `json:"user_id"`
	CampaignID string    `json:"campaign_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Sign struct {
	ID                  string     `json:"id"`
	CampaignID          string     `json:"campaign_id"`
	PlacedByUserID      string     `json:"placed_by_user_id"`
	Latitude            float64    `json:"latitude"`
	Longitude           float64    `json:"longitude"`
	PlacedAt            time.Time  `json:"placed_at"`
	TakenDownAt         *time.Time `json:"taken_down_at,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	PhotoURL            *string    `json:"photo_url,omitempty"`
	NearestIntersection *string    `json:"nearest_intersection,omitempty"`
	Zipcode             *string    `json:"zipcode,omitempty"`
	County              *string    `json:"county,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	PlacedAgo           string     `json:"placed_ago,omitempty"` // humanized, list responses only
}

type SignSuggestion struct {
	ID                  string    `json:"id"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	Notes               *string   `json:"notes,omitempty"`
	NearestIntersection *string   `json:"nearest_intersection,omitempty"`
	Zipcode             *string   `json:"zipcode,omitempty"`
	County              *string   `json:"county,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type SignReport struct {
	ID               string    `json:"id"`
	SignID           string    `json:"sign_id"`
	Comment          string    `json:"comment"`
	ReportedByUserID *string   `json:"reported_by_user_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type AdoptASignSubmission struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               *string   `json:"email,omitempty"`
	Phone               *string   `json:"phone,omitempty"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	Notes               *string   `json:"notes,omitempty"`
	NearestIntersection *string   `json:"nearest_intersection,omitempty"`
	Zipcode             *string   `json:"zipcode,omitempty"`
	County              *string   `json:"county,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	SubmittedAgo        string    `json:"submitted_ago,omitempty"` // humanized, list responses only
}

// MapClusterConfig is the process-wide map display configuration, read by
// everyone and writable only by authenticated users.
type MapClusterConfig struct {
	ClusteringEnabled       bool `json:"clustering_enabled"`
	MaxClusterRadius        int  `json:"max_cluster_radius"`
	DisableClusteringAtZoom int  `json:"disable_clustering_at_zoom"`
	DefaultMapZoom          int  `json:"default_map_zoom"`
}

// DashboardResponse merges the independent reads behind the volunteer
// dashboard view. Reports are grouped by sign so the client can flag signs
// that need attention.
type DashboardResponse struct {
	Signs         []Sign                  `json:"signs"`
	Suggestions   []SignSuggestion        `json:"suggestions"`
	Adoptions     []AdoptASignSubmission  `json:"adoptions"`
	ReportsBySign map[string][]SignReport `json:"reports_by_sign"`
	Config        MapClusterConfig        `json:"config"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
