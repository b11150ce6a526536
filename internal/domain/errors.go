package domain

// ErrorKind classifies an Error into the fixed failure taxonomy shared by
// every layer. The kind is stable; the message is human-readable.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "NotFound"
	KindInvalid         ErrorKind = "Invalid"
	KindConflict        ErrorKind = "Conflict"
	KindUnauthorized    ErrorKind = "Unauthorized"
	KindForbidden       ErrorKind = "Forbidden"
	KindExternalService ErrorKind = "ExternalServiceError"
	KindInternal        ErrorKind = "InternalError"
)

// Error is the failure branch carried by every Result. Code is the
// transport status the boundary should answer with.
type Error struct {
	Message string    `json:"message"`
	Kind    ErrorKind `json:"type"`
	Code    int       `json:"code"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(message, fallback string, kind ErrorKind, code int) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{Message: message, Kind: kind, Code: code}
}

// NotFound reports a missing resource. An empty message selects the default.
func NotFound(message string) *Error {
	return newError(message, "Given parameter not found.", KindNotFound, 404)
}

func Invalid(message string) *Error {
	return newError(message, "Invalid parameter.", KindInvalid, 400)
}

func Conflict(message string) *Error {
	return newError(message, "Conflict with existing data.", KindConflict, 409)
}

func Unauthorized(message string) *Error {
	return newError(message, "Unauthorized access.", KindUnauthorized, 401)
}

func Forbidden(message string) *Error {
	return newError(message, "Forbidden access.", KindForbidden, 403)
}

func ExternalServiceError(message string) *Error {
	return newError(message, "External service error.", KindExternalService, 500)
}

func InternalError(message string) *Error {
	return newError(message, "Internal server error.", KindInternal, 500)
}
