package errors

import (
	"errors"
	"net/http"
)

// Machine-readable error codes returned alongside the message so clients can
// branch without string-matching (e.g. offer a "resend verification" action).
const (
	CodeVerificationRequired = "verification_required"
	CodeAlreadyVerified      = "already_verified"
	CodeMissingToken         = "missing_token"
	CodeInvalidToken         = "invalid_token"
	CodeExpiredToken         = "expired_token"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Code       string
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func New(message string, statusCode int) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: statusCode}
}

func BadRequest(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func Unauthorized(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func Forbidden(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

func NotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func Conflict(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

// VerificationRequired is returned by login when credentials are valid but the
// account's email is not verified. Distinct from Unauthorized so the client
// can offer a resend-verification action.
func VerificationRequired() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Message:    "Email verification required. Please check your inbox",
		StatusCode: http.StatusUnauthorized,
		Code:       CodeVerificationRequired,
	}
}

func AlreadyVerified() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Message:    "Email is already verified",
		StatusCode: http.StatusBadRequest,
		Code:       CodeAlreadyVerified,
	}
}

func statusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

func IsConflict(err error) bool {
	return statusCode(err) == http.StatusConflict
}

func IsUnauthorized(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

// HasCode reports whether err carries the given machine-readable code.
func HasCode(err error, code string) bool {
	var e *ErrorWithStatusCode
	return errors.As(err, &e) && e.Code == code
}
