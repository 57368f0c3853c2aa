// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, invite codes, and session helpers.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(password, hash)
	err := auth.ValidatePassword(password) // minimum 8 characters

# Sessions

Login state is carried in a gorilla/sessions cookie store:

	store := auth.NewStore(secret)
	err := auth.SignIn(store, w, r, userID)
	id := auth.UserID(store, r) // "" when signed out
	err := auth.SignOut(store, w, r)

Cookies are HttpOnly, SameSite=Lax, with a 7-day lifetime.

# Invite Codes

Campaign invite codes are 8 random base-36 characters:

	code, err := auth.NewInviteCode()

There is no collision retry; the unique index on campaigns.invite_code
surfaces the (unlikely) conflict to the caller.
*/
package auth
