// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Error("Hash must not equal the plaintext password")
	}

	if err := CheckPassword("correct horse battery", hash); err != nil {
		t.Errorf("CheckPassword rejected the correct password: %v", err)
	}
	if err := CheckPassword("wrong password", hash); err == nil {
		t.Error("CheckPassword accepted the wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"long enough", "12345678", nil},
		{"too short", "1234567", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePassword(tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestNewInviteCode(t *testing.T) {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := NewInviteCode()
		if err != nil {
			t.Fatalf("NewInviteCode failed: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("Expected 8-character code, got %q", code)
		}
		for _, c := range code {
			if !strings.ContainsRune(alphabet, c) {
				t.Fatalf("Code %q contains %q outside the base-36 alphabet", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("Expected distinct codes across calls")
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := NewStore("test-secret")

	// No cookie yet
	if id := UserID(store, httptest.NewRequest("GET", "/", nil)); id != "" {
		t.Errorf("Expected empty user id without a session, got %q", id)
	}

	// Sign in and capture the cookie
	rec := httptest.NewRecorder()
	if err := SignIn(store, rec, httptest.NewRequest("POST", "/auth/login", nil), "user-123"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if id := UserID(store, req); id != "user-123" {
		t.Errorf("Expected user-123 from session, got %q", id)
	}

	// Sign out expires the cookie
	rec = httptest.NewRecorder()
	if err := SignOut(store, rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	var expired bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionName && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("SignOut did not expire the session cookie")
	}
}

func TestStoreOptions(t *testing.T) {
	store := NewStore("test-secret")
	if !store.Options.HttpOnly {
		t.Error("Session cookies must be HttpOnly")
	}
	if store.Options.SameSite != http.SameSiteLaxMode {
		t.Error("Session cookies must use SameSite=Lax")
	}
}
