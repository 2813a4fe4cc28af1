package api

import (
	"time"

	"github.com/accountd-dev/accountd/internal/domain"
)

// Request DTOs

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type AuthenticateRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResendCodeRequest struct {
	Email string `json:"email" validate:"required"`
}

type CodeValidationRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// Response DTOs

type CreateUserResponse = domain.Info

type MessageResponse struct {
	Message string `json:"message"`
}

type ForgotPasswordResponse struct {
	Id         string    `json:"id"`
	ValidUntil time.Time `json:"valid_until"`
}

type ResendCodeResponse struct {
	Id         string    `json:"id"`
	ValidUntil time.Time `json:"valid_until"`
}

// ErrorResponse is the body shape of every failed request.
type ErrorResponse struct {
	Detail ErrorDetail `json:"detail"`
}

type ErrorDetail struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Detail      string `json:"detail,omitempty"`
}
