package service

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
	"github.com/accountd-dev/accountd/internal/jwt"
	"github.com/accountd-dev/accountd/internal/logger"
)

type AuthService interface {
	Authenticate(creds domain.Credentials) (string, error)
	Renew(tokenStr string) (string, error)
}

type AuthStorage interface {
	User(email domain.Email) (domain.User, error)
	Session(email domain.Email) (domain.Session, error)
	SaveSession(session domain.Session) error
}

type Auth struct {
	storage AuthStorage
	jwt     jwt.JwtService
}

func NewAuth(storage AuthStorage, jwt jwt.JwtService) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

// Authenticate checks credentials and issues a signed access token.
// The session record is overwritten, logically invalidating any token
// issued earlier for the same user.
func (a *Auth) Authenticate(creds domain.Credentials) (string, error) {
	email := strings.ToLower(creds.Email)

	user, err := a.storage.User(email)
	if err != nil {
		return "", err
	}

	if !user.Verification.Verified {
		return "", internal_errors.New(internal_errors.KindUnauthorized, "User not verified")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		logger.Log.Warn("password verification failed", "email", email)
		return "", internal_errors.New(internal_errors.KindUnauthorized, "Incorrect password")
	}

	return a.issue(user)
}

// Renew exchanges a valid token for a fresh one. The presented token must
// match the stored session exactly; the user must still exist and be
// verified.
func (a *Auth) Renew(tokenStr string) (string, error) {
	claims, err := a.jwt.DecodeToken(tokenStr)
	if err != nil {
		return "", err
	}

	session, err := a.storage.Session(claims.Email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", internal_errors.New(internal_errors.KindUnauthorized, "Invalid Token")
		}
		return "", err
	}
	if session.Token != tokenStr {
		return "", internal_errors.New(internal_errors.KindUnauthorized, "Invalid Token")
	}

	user, err := a.storage.User(claims.Email)
	if err != nil {
		return "", err
	}
	if !user.Verification.Verified {
		return "", internal_errors.New(internal_errors.KindUnauthorized, "User not verified")
	}

	return a.issue(user)
}

func (a *Auth) issue(user domain.User) (string, error) {
	token, err := a.jwt.NewToken(user.Email, user.Roles)
	if err != nil {
		return "", err
	}

	session := domain.Session{Email: user.Email, Token: token, UpdatedAt: time.Now().UTC()}
	if err := a.storage.SaveSession(session); err != nil {
		return "", err
	}

	return token, nil
}
