package failure

import (
	"errors"
	"net/http"
)

const internalMessage = "internal server error"

// Failure is an error the client may see. Code is the HTTP status it maps to.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = New(http.StatusForbidden, "You don't have the required permissions")

func (e *Failure) Error() string {
	return e.Message
}

// Is matches another Failure with the same code and message, so a copied
// ForbiddenError still compares equal.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return e.Code == other.Code && e.Message == other.Message
}

func New(code int, msg string) *Failure {
	return &Failure{Code: code, Message: msg}
}

// BadRequest exposes err's text with a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func TooManyRequests(msg string) error {
	return New(http.StatusTooManyRequests, msg)
}

func as(err error) (*Failure, bool) {
	var fail *Failure

	return fail, errors.As(err, &fail)
}

// GetCode is 500 for anything that is not a Failure.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage hides the text of errors that are not a Failure.
func GetMessage(err error) string {
	if fail, ok := as(err); ok {
		return fail.Message
	}

	return internalMessage
}
