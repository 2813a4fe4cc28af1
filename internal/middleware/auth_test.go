package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
	"github.com/accountd-dev/accountd/internal/jwt"
)

type mockSessionStore struct {
	MockSession func(email domain.Email) (domain.Session, error)
}

func (m *mockSessionStore) Session(email domain.Email) (domain.Session, error) {
	if m.MockSession != nil {
		return m.MockSession(email)
	}
	return domain.Session{}, internal_errors.New(internal_errors.KindNotFound, "Session not found")
}

func echoClaims(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaimsFromContext(r)
		require.NotNil(t, claims)
		w.Write([]byte(claims.Email))
	})
}

func TestNeedAuth(t *testing.T) {
	jwtService := jwt.New("test_secret", time.Hour)
	token, err := jwtService.NewToken("a@b.com", []domain.Role{domain.RoleFree})
	require.NoError(t, err)

	sessions := &mockSessionStore{
		MockSession: func(email domain.Email) (domain.Session, error) {
			return domain.Session{Email: email, Token: token}, nil
		},
	}
	mw := NewAuth(jwtService, sessions)

	t.Run("token from authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		mw.NeedAuth()(echoClaims(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "a@b.com", rr.Body.String())
	})

	t.Run("token from cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		rr := httptest.NewRecorder()

		mw.NeedAuth()(echoClaims(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "a@b.com", rr.Body.String())
	})

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
		rr := httptest.NewRecorder()

		mw.NeedAuth()(echoClaims(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Please sign-in")
	})

	t.Run("tampered token", func(t *testing.T) {
		tampered := token[:len(token)-1]
		if token[len(token)-1] == 'x' {
			tampered += "y"
		} else {
			tampered += "x"
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
		req.Header.Set("Authorization", "Bearer "+tampered)
		rr := httptest.NewRecorder()

		mw.NeedAuth()(echoClaims(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		// same writer as the handlers: decoder reason follows the message
		assert.Contains(t, rr.Body.String(), "Invalid Token: ")
		assert.Contains(t, rr.Body.String(), "invalid_authentication")
	})

	t.Run("session does not match token", func(t *testing.T) {
		staleSessions := &mockSessionStore{
			MockSession: func(email domain.Email) (domain.Session, error) {
				return domain.Session{Email: email, Token: "different_token"}, nil
			},
		}
		mw := NewAuth(jwtService, staleSessions)

		req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		mw.NeedAuth()(echoClaims(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid Token")
	})

	t.Run("no session", func(t *testing.T) {
		mw := NewAuth(jwtService, &mockSessionStore{})

		req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		mw.NeedAuth()(echoClaims(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
