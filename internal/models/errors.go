package models

import (
	"errors"
)

type ErrorType string

const (
	ErrorTypeConflict      ErrorType = "conflict"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeUnprocessable ErrorType = "unprocessable_entity"
)

const (
	MsgVoucherExists   = "Voucher already exist."
	MsgVoucherNotFound = "Voucher does not exist."
)

// ErrDuplicateCode is returned by stores when the unique code constraint rejects an insert.
var ErrDuplicateCode = errors.New("duplicate voucher code")

// AppError is a business error that callers are expected to surface to clients.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return string(e.Type) + ": " + e.Message
}

func ConflictError(msg string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: msg}
}

func NotFoundError(msg string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: msg}
}

func UnprocessableError(msg string) *AppError {
	return &AppError{Type: ErrorTypeUnprocessable, Message: msg}
}

// AsAppError unwraps err into an *AppError if it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsConflict(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == ErrorTypeConflict
}
