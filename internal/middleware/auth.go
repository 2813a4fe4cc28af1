package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/accountd-dev/accountd/internal/api"
	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
	"github.com/accountd-dev/accountd/internal/jwt"
)

// SessionStore is the slice of storage the middleware needs to
// cross-check a presented token against the single live session.
type SessionStore interface {
	Session(email domain.Email) (domain.Session, error)
}

// Key to store the verified claims in the request context
type key int

const claimsKey key = 0

type Auth struct {
	jwt      jwt.JwtService
	sessions SessionStore
}

func NewAuth(jwtService jwt.JwtService, sessions SessionStore) *Auth {
	return &Auth{jwt: jwtService, sessions: sessions}
}

// NeedAuth rejects requests without a valid token. A token is accepted
// from the Authorization header or, for browser clients, the access_token
// cookie, and must match the stored session record.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.extract(r)
			if err != nil {
				api.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Auth) extract(r *http.Request) (*jwt.Claims, error) {
	var tokenString string
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	} else if cookie, err := r.Cookie("access_token"); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		return nil, internal_errors.New(internal_errors.KindUnauthorized, "Please sign-in")
	}

	claims, err := a.jwt.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	session, err := a.sessions.Session(claims.Email)
	if err != nil || session.Token != tokenString {
		return nil, internal_errors.New(internal_errors.KindUnauthorized, "Invalid Token")
	}

	return claims, nil
}

// GetClaimsFromContext returns the verified claims, or nil when the
// request did not pass NeedAuth.
func GetClaimsFromContext(r *http.Request) *jwt.Claims {
	claims, ok := r.Context().Value(claimsKey).(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}

