// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/vote411/sign-tracker/middleware"
	"github.com/vote411/sign-tracker/models"
	"github.com/vote411/sign-tracker/testutil"
)

func TestCreateSuggestion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewSuggestionHandler(conn, testutil.GetTestConfig(t), testutil.NewGeocodeStub(t))

	notes := "Great corner lot, owner is friendly"
	body := models.CreateSuggestionRequest{Latitude: 37.21, Longitude: -93.29, Notes: &notes}
	w := httptest.NewRecorder()
	handler.CreateSuggestion(w, testutil.MakeRequest("POST", "/suggestions", body, nil))

	testutil.AssertStatus(t, w, 201)
	var resp models.CreateSuggestionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.SuggestionID == "" {
		t.Fatal("Expected a suggestion id in the response")
	}

	var intersection, zipcode sql.NullString
	err := conn.QueryRow(`
		SELECT nearest_intersection, zipcode FROM sign_suggestions WHERE id = $1
	`, resp.SuggestionID).Scan(&intersection, &zipcode)
	if err != nil {
		t.Fatalf("Failed to read suggestion: %v", err)
	}
	if intersection.String != "Main St, Downtown" || zipcode.String != "65801" {
		t.Errorf("Expected geocoded metadata, got %q/%q", intersection.String, zipcode.String)
	}
}

func TestCreateSuggestionBadCoordinates(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewSuggestionHandler(conn, testutil.GetTestConfig(t), testutil.NewGeocodeStub(t))

	body := models.CreateSuggestionRequest{Latitude: 95, Longitude: -93.29}
	w := httptest.NewRecorder()
	handler.CreateSuggestion(w, testutil.MakeRequest("POST", "/suggestions", body, nil))

	testutil.AssertStatus(t, w, 400)
}

func TestGetSuggestions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewSuggestionHandler(conn, testutil.GetTestConfig(t), testutil.NewGeocodeStub(t))

	testutil.CreateTestSuggestion(t, conn, "corner lot")
	testutil.CreateTestSuggestion(t, conn, "")

	w := httptest.NewRecorder()
	handler.GetSuggestions(w, testutil.MakeRequest("GET", "/suggestions", nil, nil))

	testutil.AssertStatus(t, w, 200)
	var suggestions []models.SignSuggestion
	testutil.AssertJSON(t, w, &suggestions)
	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(suggestions))
	}
}

func TestDeleteSuggestion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewSuggestionHandler(conn, testutil.GetTestConfig(t), testutil.NewGeocodeStub(t))

	suggestionID := testutil.CreateTestSuggestion(t, conn, "corner lot")

	req := testutil.MakeRequest("DELETE", "/suggestions/"+suggestionID, nil, nil)
	req.SetPathValue("id", suggestionID)
	w := httptest.NewRecorder()
	handler.DeleteSuggestion(w, req)
	testutil.AssertStatus(t, w, 204)

	// Gone now
	req = testutil.MakeRequest("DELETE", "/suggestions/"+suggestionID, nil, nil)
	req.SetPathValue("id", suggestionID)
	w = httptest.NewRecorder()
	handler.DeleteSuggestion(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestConvertToSign(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewSuggestionHandler(conn, testutil.GetTestConfig(t), testutil.NewFailingGeocodeStub(t))

	userID := testutil.CreateTestUser(t, conn, "vol@example.com")
	campaignID, _ := testutil.CreateTestCampaign(t, conn, userID, "Downtown push")
	suggestionID := testutil.CreateTestSuggestion(t, conn, "corner lot")

	req := middleware.WithUser(testutil.MakeRequest("POST", "/suggestions/"+suggestionID+"/convert", nil, nil), userID)
	req.SetPathValue("id", suggestionID)
	w := httptest.NewRecorder()
	handler.ConvertToSign(w, req)

	testutil.AssertStatus(t, w, 201)
	var resp models.CreateSignResponse
	testutil.AssertJSON(t, w, &resp)

	// Exactly one sign, carrying the suggestion's data without re-geocoding.
	// The failing geocoder proves the stored metadata came from the
	// suggestion row.
	var signCount int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM signs`).Scan(&signCount); err != nil {
		t.Fatalf("Failed to count signs: %v", err)
	}
	if signCount != 1 {
		t.Fatalf("Expected exactly 1 sign, got %d", signCount)
	}

	var gotCampaign string
	var lat, lng float64
	var notes, intersection, county sql.NullString
	err := conn.QueryRow(`
		SELECT campaign_id, latitude, longitude, notes, nearest_intersection, county
		FROM signs WHERE id = $1
	`, resp.SignID).Scan(&gotCampaign, &lat, &lng, &notes, &intersection, &county)
	if err != nil {
		t.Fatalf("Failed to read converted sign: %v", err)
	}
	if gotCampaign != campaignID {
		t.Errorf("Expected sign in the caller's campaign %s, got %s", campaignID, gotCampaign)
	}
	if lat != 37.21 || lng != -93.29 {
		t.Errorf("Expected suggestion coordinates, got %v/%v", lat, lng)
	}
	if notes.String != "corner lot" {
		t.Errorf("Expected notes carried over, got %q", notes.String)
	}
	if intersection.String != "Main St, Downtown" || county.String != "Greene County" {
		t.Errorf("Expected geo metadata carried over, got %q/%q", intersection.String, county.String)
	}

	// The suggestion is gone
	var suggestionCount int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM sign_suggestions`).Scan(&suggestionCount); err != nil {
		t.Fatalf("Failed to count suggestions: %v", err)
	}
	if suggestionCount != 0 {
		t.Errorf("Expected 0 suggestions after conversion, got %d", suggestionCount)
	}
}

func TestConvertToSignCreatesDefaultCampaign(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewSuggestionHandler(conn, testutil.GetTestConfig(t), testutil.NewGeocodeStub(t))

	// User with no campaign memberships
	userID := testutil.CreateTestUser(t, conn, "new@example.com")
	suggestionID := testutil.CreateTestSuggestion(t, conn, "")

	req := middleware.WithUser(testutil.MakeRequest("POST", "/suggestions/"+suggestionID+"/convert", nil, nil), userID)
	req.SetPathValue("id", suggestionID)
	w := httptest.NewRecorder()
	handler.ConvertToSign(w, req)

	testutil.AssertStatus(t, w, 201)

	var name string
	err := conn.QueryRow(`
		SELECT c.name FROM campaigns c
		JOIN campaign_members m ON m.campaign_id = c.id
		WHERE m.user_id = $1
	`, userID).Scan(&name)
	if err != nil {
		t.Fatalf("Expected a campaign membership to be created: %v", err)
	}
	if name != models.DefaultCampaignName {
		t.Errorf("Expected default campaign %q, got %q", models.DefaultCampaignName, name)
	}
}

func TestConvertToSignNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewSuggestionHandler(conn, testutil.GetTestConfig(t), testutil.NewGeocodeStub(t))

	userID := testutil.CreateTestUser(t, conn, "vol@example.com")

	req := middleware.WithUser(testutil.MakeRequest("POST", "/suggestions/missing/convert", nil, nil), userID)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.ConvertToSign(w, req)

	testutil.AssertStatus(t, w, 404)
}

func TestConvertToSignFailedInsertKeepsSuggestion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewSuggestionHandler(conn, testutil.GetTestConfig(t), testutil.NewGeocodeStub(t))

	userID := testutil.CreateTestUser(t, conn, "vol@example.com")
	testutil.CreateTestCampaign(t, conn, userID, "Downtown push")
	suggestionID := testutil.CreateTestSuggestion(t, conn, "corner lot")

	// Force the sign insert to fail
	if _, err := conn.Exec(`DROP TABLE signs`); err != nil {
		t.Fatalf("Failed to drop signs table: %v", err)
	}

	req := middleware.WithUser(testutil.MakeRequest("POST", "/suggestions/"+suggestionID+"/convert", nil, nil), userID)
	req.SetPathValue("id", suggestionID)
	w := httptest.NewRecorder()
	handler.ConvertToSign(w, req)

	testutil.AssertStatus(t, w, 500)

	// The suggestion must survive the failed conversion
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM sign_suggestions WHERE id = $1`, suggestionID).Scan(&count); err != nil {
		t.Fatalf("Failed to count suggestions: %v", err)
	}
	if count != 1 {
		t.Error("Expected the suggestion to remain after a failed sign insert")
	}
}
