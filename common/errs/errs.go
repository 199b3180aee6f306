package errs

import (
	"fmt"
	"net/http"
)

type HttpError struct {
	Code    int
	Message string
	Data    any
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("code %d: %s, data: %v", e.Code, e.Message, e.Data)
}

func NotFound(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message}
}

func BadRequest(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *HttpError {
	return &HttpError{Code: http.StatusUnauthorized, Message: message}
}

func Conflict(message string) *HttpError {
	return &HttpError{Code: http.StatusConflict, Message: message}
}
