package errors

import "net/http"

// Kind is the closed set of failure categories the service reports.
// Every error crossing the service boundary carries one; the handler
// layer derives the HTTP status from it.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindUnauthorized
	KindNotFound
	KindConflict
	KindInternal
)

// StatusCode maps a kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Type is the machine-readable name serialized in error bodies.
func (k Kind) Type() string {
	switch k {
	case KindInvalidInput:
		return "invalid_resource_data"
	case KindUnauthorized:
		return "invalid_authentication"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "data_already_exists"
	default:
		return "internal_error"
	}
}

// Description is the default human-readable text for a kind, used when an
// Error carries no more specific message.
func (k Kind) Description() string {
	switch k {
	case KindInvalidInput:
		return "The requested resource contains invalid data."
	case KindUnauthorized:
		return "The authentication key provided is invalid."
	case KindNotFound:
		return "The server can not find the requested resource."
	case KindConflict:
		return "The data already exist."
	default:
		return "An internal error has occurred while processing the request."
	}
}

// Error is the single error type raised by services and repositories.
// Message overrides the kind's default description; Detail carries
// optional extra context for the client.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Description()
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewWithDetail(kind Kind, message, detail string) *Error {
	return &Error{Kind: kind, Message: message, Detail: detail}
}

// KindOf extracts the kind from err, defaulting to KindInternal for
// anything that is not an *Error (raw driver faults never reach clients).
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindNotFound
}

func IsConflict(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindConflict
}

func IsInvalidInput(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindInvalidInput
}
