// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/vote411/sign-tracker/middleware"
	"github.com/vote411/sign-tracker/models"
	"github.com/vote411/sign-tracker/testutil"
)

func TestCreateCampaign(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewCampaignHandler(conn, testutil.GetTestConfig(t))

	userID := testutil.CreateTestUser(t, conn, "organizer@example.com")

	body := models.CreateCampaignRequest{Name: "  Ward 3 canvass  "}
	req := middleware.WithUser(testutil.MakeRequest("POST", "/campaigns", body, nil), userID)
	w := httptest.NewRecorder()
	handler.CreateCampaign(w, req)

	testutil.AssertStatus(t, w, 201)
	var resp models.CreateCampaignResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.CampaignID == "" {
		t.Fatal("Expected a campaign id in the response")
	}
	if len(resp.InviteCode) != 8 {
		t.Errorf("Expected an 8-character invite code, got %q", resp.InviteCode)
	}

	// Name stored trimmed, creator enrolled as first member
	var name string
	if err := conn.QueryRow(`SELECT name FROM campaigns WHERE id = $1`, resp.CampaignID).Scan(&name); err != nil {
		t.Fatalf("Failed to read campaign: %v", err)
	}
	if name != "Ward 3 canvass" {
		t.Errorf("Expected trimmed name, got %q", name)
	}

	var members int
	if err := conn.QueryRow(`
		SELECT COUNT(*) FROM campaign_members WHERE campaign_id = $1 AND user_id = $2
	`, resp.CampaignID, userID).Scan(&members); err != nil {
		t.Fatalf("Failed to count members: %v", err)
	}
	if members != 1 {
		t.Errorf("Expected creator membership, got %d rows", members)
	}
}

func TestCreateCampaignEmptyName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewCampaignHandler(conn, testutil.GetTestConfig(t))

	userID := testutil.CreateTestUser(t, conn, "organizer@example.com")

	body := models.CreateCampaignRequest{Name: "   "}
	req := middleware.WithUser(testutil.MakeRequest("POST", "/campaigns", body, nil), userID)
	w := httptest.NewRecorder()
	handler.CreateCampaign(w, req)

	testutil.AssertStatus(t, w, 400)
}

func TestGetCampaignsForUser(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewCampaignHandler(conn, testutil.GetTestConfig(t))

	userID := testutil.CreateTestUser(t, conn, "organizer@example.com")
	other := testutil.CreateTestUser(t, conn, "other@example.com")
	testutil.CreateTestCampaign(t, conn, userID, "Zebra crossing")
	testutil.CreateTestCampaign(t, conn, userID, "Airport corridor")
	testutil.CreateTestCampaign(t, conn, other, "Not mine")

	req := middleware.WithUser(testutil.MakeRequest("GET", "/my/campaigns", nil, nil), userID)
	w := httptest.NewRecorder()
	handler.GetCampaignsForUser(w, req)

	testutil.AssertStatus(t, w, 200)
	var campaigns []models.Campaign
	testutil.AssertJSON(t, w, &campaigns)

	if len(campaigns) != 2 {
		t.Fatalf("Expected 2 campaigns, got %d", len(campaigns))
	}
	// Ordered by name
	if campaigns[0].Name != "Airport corridor" || campaigns[1].Name != "Zebra crossing" {
		t.Errorf("Expected name ordering, got %q then %q", campaigns[0].Name, campaigns[1].Name)
	}
}

func TestGetByInviteCode(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewCampaignHandler(conn, testutil.GetTestConfig(t))

	userID := testutil.CreateTestUser(t, conn, "organizer@example.com")
	campaignID, inviteCode := testutil.CreateTestCampaign(t, conn, userID, "Downtown push")

	req := testutil.MakeRequest("GET", "/campaigns/by-invite/"+inviteCode, nil, nil)
	req.SetPathValue("code", inviteCode)
	w := httptest.NewRecorder()
	handler.GetByInviteCode(w, req)

	testutil.AssertStatus(t, w, 200)
	var c models.Campaign
	testutil.AssertJSON(t, w, &c)
	if c.ID != campaignID || c.Name != "Downtown push" {
		t.Errorf("Unexpected campaign %+v", c)
	}

	// Whitespace around the code is tolerated
	req = testutil.MakeRequest("GET", "/campaigns/by-invite/code", nil, nil)
	req.SetPathValue("code", "  "+inviteCode+"  ")
	w = httptest.NewRecorder()
	handler.GetByInviteCode(w, req)
	testutil.AssertStatus(t, w, 200)

	// Unknown code
	req = testutil.MakeRequest("GET", "/campaigns/by-invite/nope1234", nil, nil)
	req.SetPathValue("code", "nope1234")
	w = httptest.NewRecorder()
	handler.GetByInviteCode(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestJoinByInviteCode(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewCampaignHandler(conn, testutil.GetTestConfig(t))

	organizer := testutil.CreateTestUser(t, conn, "organizer@example.com")
	joiner := testutil.CreateTestUser(t, conn, "joiner@example.com")
	campaignID, inviteCode := testutil.CreateTestCampaign(t, conn, organizer, "Downtown push")

	join := func(code string) *httptest.ResponseRecorder {
		body := models.JoinCampaignRequest{InviteCode: code}
		req := middleware.WithUser(testutil.MakeRequest("POST", "/campaigns/join", body, nil), joiner)
		w := httptest.NewRecorder()
		handler.JoinByInviteCode(w, req)
		return w
	}

	testutil.AssertStatus(t, join(inviteCode), 204)

	// Joining twice conflicts and leaves exactly one membership row
	testutil.AssertStatus(t, join(inviteCode), 409)

	var members int
	if err := conn.QueryRow(`
		SELECT COUNT(*) FROM campaign_members WHERE campaign_id = $1 AND user_id = $2
	`, campaignID, joiner).Scan(&members); err != nil {
		t.Fatalf("Failed to count members: %v", err)
	}
	if members != 1 {
		t.Errorf("Expected exactly 1 membership row, got %d", members)
	}

	// Unknown code
	testutil.AssertStatus(t, join("zzzzzzzz"), 404)

	// Blank code
	testutil.AssertStatus(t, join("   "), 400)
}

func TestGetOrCreateDefault(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewCampaignHandler(conn, testutil.GetTestConfig(t))

	userID := testutil.CreateTestUser(t, conn, "new@example.com")

	callDefault := func() models.DefaultCampaignResponse {
		req := middleware.WithUser(testutil.MakeRequest("POST", "/campaigns/default", nil, nil), userID)
		w := httptest.NewRecorder()
		handler.GetOrCreateDefault(w, req)
		testutil.AssertStatus(t, w, 200)
		var resp models.DefaultCampaignResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	first := callDefault()
	if first.CampaignID == "" {
		t.Fatal("Expected a campaign id")
	}

	// Second call returns the same campaign and creates no new rows
	second := callDefault()
	if second.CampaignID != first.CampaignID {
		t.Errorf("Expected the same default campaign, got %s then %s", first.CampaignID, second.CampaignID)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM campaigns`).Scan(&count); err != nil {
		t.Fatalf("Failed to count campaigns: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 campaign, got %d", count)
	}

	var name string
	if err := conn.QueryRow(`SELECT name FROM campaigns WHERE id = $1`, first.CampaignID).Scan(&name); err != nil {
		t.Fatalf("Failed to read campaign: %v", err)
	}
	if name != models.DefaultCampaignName {
		t.Errorf("Expected default campaign name %q, got %q", models.DefaultCampaignName, name)
	}
}

func TestGetOrCreateDefaultPrefersExisting(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := NewCampaignHandler(conn, testutil.GetTestConfig(t))

	userID := testutil.CreateTestUser(t, conn, "member@example.com")
	campaignID, _ := testutil.CreateTestCampaign(t, conn, userID, "Existing effort")

	req := middleware.WithUser(testutil.MakeRequest("POST", "/campaigns/default", nil, nil), userID)
	w := httptest.NewRecorder()
	handler.GetOrCreateDefault(w, req)

	testutil.AssertStatus(t, w, 200)
	var resp models.DefaultCampaignResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.CampaignID != campaignID {
		t.Errorf("Expected existing campaign %s, got %s", campaignID, resp.CampaignID)
	}
}
