package domain

import "time"

type (
	Email = string
	Role  = string
)

// RoleFree is assigned to every new account.
const RoleFree Role = "free"

// User is the account document. The email doubles as the document key,
// so uniqueness is enforced by the store's primary index.
type User struct {
	Email        Email        `bson:"_id"`
	Name         string       `bson:"name"`
	PasswordHash string       `bson:"password"`
	Roles        []Role       `bson:"roles"`
	Verification Verification `bson:"verification"`
	CreatedAt    time.Time    `bson:"created_at"`
	UpdatedAt    time.Time    `bson:"updated_at"`
}

// Verification tracks the onboarding state of an account.
type Verification struct {
	Verified   bool      `bson:"verified"`
	Code       string    `bson:"verification_code"`
	ValidUntil time.Time `bson:"valid_until"`
}

// Pending reports whether the verification code can still be redeemed at now.
func (v Verification) Pending(now time.Time) bool {
	return !v.Verified && v.ValidUntil.After(now)
}

// Info is the public projection of a user. The password hash and
// verification internals never leave the service boundary.
type Info struct {
	Email       Email  `json:"email"`
	Name        string `json:"name"`
	Roles       []Role `json:"roles"`
	Verificated bool   `json:"verificated"`
}

// Info builds the public projection of u.
func (u *User) Info() Info {
	return Info{
		Email:       u.Email,
		Name:        u.Name,
		Roles:       u.Roles,
		Verificated: u.Verification.Verified,
	}
}

// Credentials carries a plaintext password for the duration of a single
// request. It is never persisted.
type Credentials struct {
	Email    Email
	Password string
}
