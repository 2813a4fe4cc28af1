package handler

import (
	"net/http"
	"strings"

	"github.com/accountd-dev/accountd/internal/api"
	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
)

// AccessTokenCookie is the cookie carrying the signed token.
const AccessTokenCookie = "access_token"

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AccessTokenCookie,
		Value:    token,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	})
}

func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var body api.AuthenticateRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		api.WriteError(w, err)
		return
	}

	token, err := h.auth.Authenticate(domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		api.WriteError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Authenticated"})
}

// Renew exchanges the bearer token from the Authorization header for a
// fresh one.
func (h *Handler) Renew(w http.ResponseWriter, r *http.Request) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		api.WriteError(w, internal_errors.New(internal_errors.KindUnauthorized, "Invalid Token"))
		return
	}

	renewed, err := h.auth.Renew(token)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	h.setTokenCookie(w, renewed)
	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Authenticated"})
}
