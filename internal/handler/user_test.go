package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
)

func TestCreateUserHandler(t *testing.T) {
	h := &Handler{cfg: testConfig(t)}

	route := "/v1/user"
	router := chi.NewRouter()
	router.Post(route, h.CreateUser)
	requestBody := []byte(`{"email": "a@b.com", "password": "secret", "name": "Alice"}`)

	t.Run("successful request", func(t *testing.T) {
		h.user = &MockUserService{
			MockCreate: func(creds domain.Credentials, name string) (domain.Info, error) {
				assert.Equal(t, "a@b.com", creds.Email)
				assert.Equal(t, "secret", creds.Password)
				assert.Equal(t, "Alice", name)
				return domain.Info{Email: creds.Email, Name: name, Roles: []domain.Role{domain.RoleFree}}, nil
			},
		}

		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"email":"a@b.com","name":"Alice","roles":["free"],"verificated":false}`, rr.Body.String())
	})

	t.Run("invalid json body", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, []byte(`{invalid json::}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid_resource_data")
	})

	t.Run("missing required field", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, []byte(`{"email": "a@b.com"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Required fields missing")
	})

	t.Run("duplicate email", func(t *testing.T) {
		h.user = &MockUserService{
			MockCreate: func(creds domain.Credentials, name string) (domain.Info, error) {
				return domain.Info{}, internal_errors.New(internal_errors.KindConflict, "User already exists")
			},
		}

		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "data_already_exists")
	})
}

func TestResendCodeHandler(t *testing.T) {
	h := &Handler{cfg: testConfig(t)}

	route := "/v1/user/resend-code"
	router := chi.NewRouter()
	router.Post(route, h.ResendCode)

	t.Run("successful request", func(t *testing.T) {
		validUntil := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		h.user = &MockUserService{
			MockResendCode: func(email domain.Email) (time.Time, error) {
				assert.Equal(t, "a@b.com", email)
				return validUntil, nil
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"email": "A@B.com"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":"a@b.com","valid_until":"2025-06-01T12:00:00Z"}`, rr.Body.String())
	})

	t.Run("previous code still valid", func(t *testing.T) {
		h.user = &MockUserService{
			MockResendCode: func(email domain.Email) (time.Time, error) {
				return time.Time{}, internal_errors.New(internal_errors.KindInvalidInput, "Code already requested")
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"email": "a@b.com"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Code already requested")
	})

	t.Run("missing email", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, []byte(`{}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestForgotPasswordHandler(t *testing.T) {
	h := &Handler{cfg: testConfig(t)}

	route := "/v1/user/forgot-password"
	router := chi.NewRouter()
	router.Post(route, h.ForgotPassword)
	requestBody := []byte(`{"email": "a@b.com", "password": "newpass"}`)

	t.Run("successful request", func(t *testing.T) {
		validUntil := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		h.user = &MockUserService{
			MockRequestForgotPassword: func(creds domain.Credentials) (domain.Email, time.Time, error) {
				return creds.Email, validUntil, nil
			},
		}

		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":"a@b.com","valid_until":"2025-06-01T12:00:00Z"}`, rr.Body.String())
	})

	t.Run("reused password", func(t *testing.T) {
		h.user = &MockUserService{
			MockRequestForgotPassword: func(creds domain.Credentials) (domain.Email, time.Time, error) {
				return "", time.Time{}, internal_errors.New(internal_errors.KindConflict, "Password already used")
			},
		}

		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "Password already used")
	})

	t.Run("unknown user", func(t *testing.T) {
		h.user = &MockUserService{
			MockRequestForgotPassword: func(creds domain.Credentials) (domain.Email, time.Time, error) {
				return "", time.Time{}, internal_errors.New(internal_errors.KindNotFound, "User not found")
			},
		}

		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "not_found")
	})
}

func TestCodeValidationHandler(t *testing.T) {
	h := &Handler{cfg: testConfig(t)}

	route := "/v1/user/code-validation"
	router := chi.NewRouter()
	router.Post(route, h.CodeValidation)

	t.Run("verification code accepted", func(t *testing.T) {
		h.user = &MockUserService{
			MockValidateCode: func(email domain.Email, code string) (string, error) {
				assert.Equal(t, "a@b.com", email)
				assert.Equal(t, "123-456", code)
				return "User verified", nil
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"email": "a@b.com", "code": "123-456"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"User verified"}`, rr.Body.String())
	})

	t.Run("expired code", func(t *testing.T) {
		h.user = &MockUserService{
			MockValidateCode: func(email domain.Email, code string) (string, error) {
				return "", internal_errors.New(internal_errors.KindInvalidInput, "Data is expired")
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"email": "a@b.com", "code": "000-000"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Data is expired")
	})

	t.Run("missing code", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, []byte(`{"email": "a@b.com"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
