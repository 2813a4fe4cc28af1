package handler

import (
	"net/http"
	"strings"

	"github.com/accountd-dev/accountd/internal/api"
	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
	"github.com/accountd-dev/accountd/internal/middleware"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body api.CreateUserRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		api.WriteError(w, err)
		return
	}

	info, err := h.user.Create(domain.Credentials{Email: body.Email, Password: body.Password}, body.Name)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, info)
}

// Me returns the public projection of the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)
	if claims == nil {
		api.WriteError(w, internal_errors.New(internal_errors.KindUnauthorized, "Invalid Token"))
		return
	}

	info, err := h.user.Get(claims.Email)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, info)
}

// ResendCode reissues the verification code after the previous one expired.
func (h *Handler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var body api.ResendCodeRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		api.WriteError(w, err)
		return
	}

	email := strings.ToLower(body.Email)
	validUntil, err := h.user.ResendCode(email)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.ResendCodeResponse{Id: email, ValidUntil: validUntil})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body api.ForgotPasswordRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		api.WriteError(w, err)
		return
	}

	id, validUntil, err := h.user.RequestForgotPassword(domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.ForgotPasswordResponse{Id: id, ValidUntil: validUntil})
}

func (h *Handler) CodeValidation(w http.ResponseWriter, r *http.Request) {
	var body api.CodeValidationRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		api.WriteError(w, err)
		return
	}

	msg, err := h.user.ValidateCode(body.Email, body.Code)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: msg})
}
