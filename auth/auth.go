// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

// SessionName is the cookie under which the login session is stored.
const SessionName = "session"

var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

// HashPassword returns the bcrypt hash of a password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a plaintext password against a stored hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

// NewInviteCode returns an 8-character base-36 campaign invite code.
// Generation is single-shot: uniqueness is enforced by the database index,
// and a collision surfaces as an insert conflict rather than being retried.
func NewInviteCode() (string, error) {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b), nil
}

// NewStore creates the cookie session store used for login sessions
func NewStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// UserID returns the signed-in user's id, or "" when there is no session
func UserID(store sessions.Store, r *http.Request) string {
	session, _ := store.Get(r, SessionName)
	id, _ := session.Values["user_id"].(string)
	return id
}

// SignIn records the user id in the session cookie
func SignIn(store sessions.Store, w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := store.Get(r, SessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

// SignOut clears the session cookie
func SignOut(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, _ := store.Get(r, SessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
