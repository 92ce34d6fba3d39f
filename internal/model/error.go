// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers. Handlers map these to HTTP status codes.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict")
	ErrMailTransport  = errors.New("mail transport failure")
)

// ErrorDetail is the client-facing part of an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse is the JSON envelope for every error response.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError carries a client-facing detail plus the wrapped internal cause.
// The cause decides the HTTP status; the detail is all the client ever sees.
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

// MailErrorCategory buckets transport failures for caller-facing messaging.
// The raw transport error only ever reaches the server-side logs.
type MailErrorCategory string

const (
	MailErrAuth           MailErrorCategory = "auth"
	MailErrSenderRejected MailErrorCategory = "sender_rejected"
	MailErrRateLimited    MailErrorCategory = "rate_limited"
	MailErrTimeout        MailErrorCategory = "timeout"
	MailErrUnknown        MailErrorCategory = "unknown"
)

// MailError wraps a transport error with its category.
type MailError struct {
	Category MailErrorCategory
	Err      error
}

func (e *MailError) Error() string {
	return fmt.Sprintf("mail transport failure (%s): %v", e.Category, e.Err)
}

func (e *MailError) Unwrap() error {
	return ErrMailTransport
}

func NewMailError(category MailErrorCategory, err error) *MailError {
	return &MailError{Category: category, Err: err}
}
