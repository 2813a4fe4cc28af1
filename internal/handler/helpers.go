package handler

import (
	"encoding/json"
	"io"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/accountd-dev/accountd/internal/errors"
)

// decodeValidate parses the request body into body and checks the
// struct's validate tags.
func decodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return internal_errors.New(internal_errors.KindInvalidInput, "Body is invalid json")
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		return internal_errors.New(internal_errors.KindInvalidInput, "Required fields missing")
	}
	return nil
}
