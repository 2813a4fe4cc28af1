package domain

import "time"

// Session holds the single currently-valid token for a user.
// A new login or renewal overwrites it, which logically invalidates
// the previous token: the auth middleware cross-checks presented
// tokens against this record.
type Session struct {
	Email     Email     `bson:"_id"`
	Token     string    `bson:"token"`
	UpdatedAt time.Time `bson:"updated_at"`
}
