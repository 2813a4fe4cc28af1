package domain

import "time"

// PasswordEntry is one retired password hash in a user's history.
type PasswordEntry struct {
	CreatedAt time.Time `bson:"created_at"`
	Hash      string    `bson:"password"`
}

// PasswordHistory is the per-user append-only list of previously used
// password hashes, consulted to reject reuse on forgot-password.
type PasswordHistory struct {
	Email     Email           `bson:"_id"`
	Passwords []PasswordEntry `bson:"passwords"`
}

// PasswordStaging is a pending, time-boxed password-reset request.
// At most one exists per user; it is consumed by code validation or
// superseded once expired.
type PasswordStaging struct {
	Email      Email     `bson:"_id"`
	Hash       string    `bson:"password"`
	Code       string    `bson:"code"`
	ValidUntil time.Time `bson:"valid_until"`
}

// Pending reports whether the staged reset can still be redeemed at now.
func (p PasswordStaging) Pending(now time.Time) bool {
	return p.ValidUntil.After(now)
}
