package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/accountd-dev/accountd/internal/config"
	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
	"github.com/accountd-dev/accountd/internal/logger"
)

type UserService interface {
	Create(creds domain.Credentials, name string) (domain.Info, error)
	Get(email domain.Email) (domain.Info, error)
	ResendCode(email domain.Email) (time.Time, error)
	RequestForgotPassword(creds domain.Credentials) (domain.Email, time.Time, error)
	ValidateCode(email domain.Email, code string) (string, error)
}

type UserStorage interface {
	User(email domain.Email) (domain.User, error)
	SaveUser(user domain.User) error
	UpdateVerification(email domain.Email, verification domain.Verification) error
	MarkVerified(email domain.Email) error
	UpdatePassword(email domain.Email, passwordHash string) error
	PasswordHistory(email domain.Email) (domain.PasswordHistory, error)
	AppendPassword(email domain.Email, entry domain.PasswordEntry) error
	PasswordStaging(email domain.Email) (domain.PasswordStaging, error)
	SavePasswordStaging(staging domain.PasswordStaging, now time.Time) error
	DeletePasswordStaging(email domain.Email) error
}

type Notifier interface {
	Send(recipientEmail, subject, body string) error
	IsCorrect(email domain.Email) error
}

type User struct {
	storage UserStorage
	email   Notifier
	cfg     *config.Config
}

func NewUser(storage UserStorage, email Notifier, cfg *config.Config) *User {
	return &User{storage: storage, email: email, cfg: cfg}
}

// Create registers a new account and sends the verification code.
// Uniqueness is enforced by the store's primary index, not by a
// separate existence check, so concurrent registrations cannot both win.
func (u *User) Create(creds domain.Credentials, name string) (domain.Info, error) {
	email := strings.ToLower(creds.Email)

	if err := u.email.IsCorrect(email); err != nil {
		return domain.Info{}, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.Info{}, internal_errors.New(internal_errors.KindInternal, "")
	}

	code := GenerateVerificationCode()
	now := time.Now().UTC()

	user := domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(passHash),
		Roles:        []domain.Role{domain.RoleFree},
		Verification: domain.Verification{
			Verified:   false,
			Code:       code,
			ValidUntil: now.Add(u.cfg.Public.CodeTTL),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.storage.SaveUser(user); err != nil {
		return domain.Info{}, err
	}

	// best effort: a mail-transport outage must not fail the registration
	body := fmt.Sprintf("Your verification code is: %s", code)
	if err := u.email.Send(email, "Verification code", body); err != nil {
		logger.Log.Warn("failed to send verification code", "email", email, "error", err)
	}

	return user.Info(), nil
}

// Get returns the public projection of a user.
func (u *User) Get(email domain.Email) (domain.Info, error) {
	user, err := u.storage.User(strings.ToLower(email))
	if err != nil {
		return domain.Info{}, err
	}
	return user.Info(), nil
}

// ResendCode issues a fresh verification code for an account whose
// previous code expired before it was redeemed. A still-valid code
// blocks reissue, mirroring the staging freshness rule.
func (u *User) ResendCode(email domain.Email) (time.Time, error) {
	email = strings.ToLower(email)

	user, err := u.storage.User(email)
	if err != nil {
		return time.Time{}, err
	}

	if user.Verification.Verified {
		return time.Time{}, internal_errors.New(internal_errors.KindConflict, "User already verified")
	}

	now := time.Now().UTC()
	if user.Verification.Pending(now) {
		return time.Time{}, internal_errors.New(internal_errors.KindInvalidInput, "Code already requested")
	}

	verification := domain.Verification{
		Verified:   false,
		Code:       GenerateVerificationCode(),
		ValidUntil: now.Add(u.cfg.Public.CodeTTL),
	}
	if err := u.storage.UpdateVerification(email, verification); err != nil {
		return time.Time{}, err
	}

	body := fmt.Sprintf("Your verification code is: %s", verification.Code)
	if err := u.email.Send(email, "Verification code", body); err != nil {
		logger.Log.Error("failed to send verification code", "email", email, "error", err)
		return time.Time{}, internal_errors.New(internal_errors.KindInternal, "")
	}

	return verification.ValidUntil, nil
}

// RequestForgotPassword stages a password reset. The candidate password is
// rejected when it matches the live password or any retired one; a still
// valid earlier request blocks a new one.
func (u *User) RequestForgotPassword(creds domain.Credentials) (domain.Email, time.Time, error) {
	email := strings.ToLower(creds.Email)

	user, err := u.storage.User(email)
	if err != nil {
		return "", time.Time{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) == nil {
		return "", time.Time{}, internal_errors.New(internal_errors.KindConflict, "Password already used")
	}

	history, err := u.storage.PasswordHistory(email)
	if err != nil {
		return "", time.Time{}, err
	}
	for _, entry := range history.Passwords {
		if bcrypt.CompareHashAndPassword([]byte(entry.Hash), []byte(creds.Password)) == nil {
			return "", time.Time{}, internal_errors.New(internal_errors.KindConflict, "Password already used")
		}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return "", time.Time{}, internal_errors.New(internal_errors.KindInternal, "")
	}

	now := time.Now().UTC()
	staging := domain.PasswordStaging{
		Email:      email,
		Hash:       string(passHash),
		Code:       GenerateVerificationCode(),
		ValidUntil: now.Add(u.cfg.Public.CodeTTL),
	}
	if err := u.storage.SavePasswordStaging(staging, now); err != nil {
		return "", time.Time{}, err
	}

	body := fmt.Sprintf("Your password reset code is: %s", staging.Code)
	if err := u.email.Send(email, "Password reset code", body); err != nil {
		logger.Log.Error("failed to send reset code", "email", email, "error", err)
		return "", time.Time{}, internal_errors.New(internal_errors.KindInternal, "")
	}

	return email, staging.ValidUntil, nil
}

// ValidateCode redeems whichever unexpired code is pending for the user:
// the registration verification code marks the account verified, a staged
// reset code promotes the staged hash into the live password and retires
// the previous one. Comparison is exact and case-sensitive.
func (u *User) ValidateCode(email domain.Email, code string) (string, error) {
	email = strings.ToLower(email)

	user, err := u.storage.User(email)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()

	if user.Verification.Pending(now) && user.Verification.Code == code {
		if err := u.storage.MarkVerified(email); err != nil {
			return "", err
		}
		return "User verified", nil
	}

	staging, err := u.storage.PasswordStaging(email)
	if err != nil && !internal_errors.IsNotFound(err) {
		return "", err
	}
	if err == nil && staging.Pending(now) && staging.Code == code {
		// retire the live hash before replacing it, so the old password
		// is rejected on future reset requests
		entry := domain.PasswordEntry{CreatedAt: now, Hash: user.PasswordHash}
		if err := u.storage.AppendPassword(email, entry); err != nil {
			return "", err
		}
		if err := u.storage.UpdatePassword(email, staging.Hash); err != nil {
			return "", err
		}
		if err := u.storage.DeletePasswordStaging(email); err != nil {
			return "", err
		}
		return "Password updated", nil
	}

	return "", internal_errors.New(internal_errors.KindInvalidInput, "Data is expired")
}

// GenerateVerificationCode builds a human-readable one-time code:
// two groups of three random digits joined by a dash (DDD-DDD).
func GenerateVerificationCode() string {
	digits := make([]byte, 6)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic(err) // crypto/rand failure is not recoverable
		}
		digits[i] = byte('0' + n.Int64())
	}
	return fmt.Sprintf("%s-%s", digits[:3], digits[3:])
}
