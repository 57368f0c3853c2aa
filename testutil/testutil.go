// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	_ "modernc.org/sqlite"

	"github.com/vote411/sign-tracker/auth"
	"github.com/vote411/sign-tracker/cliparse"
	"github.com/vote411/sign-tracker/db"
	"github.com/vote411/sign-tracker/geocode"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. A single connection keeps the memory database alive for the
// duration of the test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:             8340,
		DatabaseURL:      ":memory:",
		DatabaseType:     "sqlite",
		SessionSecret:    "test-session-secret",
		GeocodeUserAgent: "sign-tracker-test/1.0",
		UploadDir:        t.TempDir(),
	}
}

// NewTestStore returns a cookie store matching the test configuration
func NewTestStore() *sessions.CookieStore {
	return auth.NewStore("test-session-secret")
}

// NewGeocodeStub starts a local reverse-geocoding endpoint returning a
// fixed address and returns a client pointed at it
func NewGeocodeStub(t *testing.T) *geocode.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"display_name": "Main St, Springfield, Greene County, 65801, USA",
			"address": {
				"road": "Main St",
				"suburb": "Downtown",
				"city": "Springfield",
				"county": "Greene County",
				"postcode": "65801"
			}
		}`))
	}))
	t.Cleanup(server.Close)

	return geocode.New(server.URL, "sign-tracker-test/1.0")
}

// NewFailingGeocodeStub returns a client whose lookups always fail, so
// every result comes back all-null
func NewFailingGeocodeStub(t *testing.T) *geocode.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	return geocode.New(server.URL, "sign-tracker-test/1.0")
}

// CreateTestUser inserts a user and returns its id
func CreateTestUser(t *testing.T, conn *sql.DB, email string) string {
	t.Helper()

	userID := uuid.NewString()
	hash, err := auth.HashPassword("test-password")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, email, hash, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return userID
}

// CreateTestCampaign inserts a campaign with the user as a member and
// returns the campaign id and invite code
func CreateTestCampaign(t *testing.T, conn *sql.DB, userID, name string) (campaignID, inviteCode string) {
	t.Helper()

	campaignID = uuid.NewString()
	inviteCode, err := auth.NewInviteCode()
	if err != nil {
		t.Fatalf("Failed to generate invite code: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO campaigns (id, name, invite_code, created_at)
		VALUES ($1, $2, $3, $4)
	`, campaignID, name, inviteCode, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test campaign: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO campaign_members (user_id, campaign_id, created_at)
		VALUES ($1, $2, $3)
	`, userID, campaignID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test membership: %v", err)
	}
	return campaignID, inviteCode
}

// CreateTestSign inserts a sign and returns its id. placedAt drives list
// ordering; takenDown controls the up/taken-down state.
func CreateTestSign(t *testing.T, conn *sql.DB, campaignID, userID string, placedAt time.Time, takenDown bool) string {
	t.Helper()

	signID := uuid.NewString()
	var takenDownAt *time.Time
	if takenDown {
		now := time.Now()
		takenDownAt = &now
	}
	_, err := conn.Exec(`
		INSERT INTO signs (id, campaign_id, placed_by_user_id, latitude, longitude,
		                   placed_at, taken_down_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, signID, campaignID, userID, 37.208, -93.292, placedAt, takenDownAt, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test sign: %v", err)
	}
	return signID
}

// CreateTestSuggestion inserts a suggestion with resolved geo metadata and
// returns its id
func CreateTestSuggestion(t *testing.T, conn *sql.DB, notes string) string {
	t.Helper()

	suggestionID := uuid.NewString()
	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}
	intersection := "Main St, Downtown"
	zipcode := "65801"
	county := "Greene County"
	_, err := conn.Exec(`
		INSERT INTO sign_suggestions (id, latitude, longitude, notes,
		                              nearest_intersection, zipcode, county, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, suggestionID, 37.21, -93.29, notesPtr, intersection, zipcode, county, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test suggestion: %v", err)
	}
	return suggestionID
}

// SessionCookie returns a login session cookie for the given user,
// produced by a real sign-in against a recorder
func SessionCookie(t *testing.T, store *sessions.CookieStore, userID string) *http.Cookie {
	t.Helper()

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	if err := auth.SignIn(store, w, r, userID); err != nil {
		t.Fatalf("Failed to create session cookie: %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("No session cookie set")
	}
	return cookies[0]
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
