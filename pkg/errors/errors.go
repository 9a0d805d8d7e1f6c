// Package errors defines the application error type exposed to the API
// layer and the mapping from domain sentinel errors onto it. HTTP status
// codes for these error codes live in api/response.
package errors

import (
	"errors"
	"fmt"

	"bookstore/domain/catalog"
	"bookstore/domain/order"
	"bookstore/domain/upload"
	"bookstore/domain/user"
)

// ErrorCode classifies an application error.
type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	CodeOrderNotFound     ErrorCode = "ORDER_NOT_FOUND"
	CodeBookNotFound      ErrorCode = "BOOK_NOT_FOUND"
	CodeAuthorNotFound    ErrorCode = "AUTHOR_NOT_FOUND"
	CodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	CodeUploadNotFound    ErrorCode = "UPLOAD_NOT_FOUND"
	CodeOutOfStock        ErrorCode = "OUT_OF_STOCK"
	CodeInvalidTransition ErrorCode = "INVALID_STATUS_TRANSITION"
	CodeEmailExists       ErrorCode = "EMAIL_EXISTS"
)

// AppError is the error shape the API layer renders. Details carries
// user-correctable context such as requested vs available stock.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError preserving the cause for errors.Is/As.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError   { return New(CodeBadRequest, message) }
func Validation(message string) *AppError   { return New(CodeValidation, message) }
func NotFound(message string) *AppError     { return New(CodeNotFound, message) }
func Conflict(message string) *AppError     { return New(CodeConflict, message) }
func Forbidden(message string) *AppError    { return New(CodeForbidden, message) }
func Unauthorized(message string) *AppError { return New(CodeUnauthorized, message) }
func Internal(message string) *AppError     { return New(CodeInternal, message) }

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// FromDomainError converts a domain error into an AppError via its
// sentinel. Unknown errors become internal: the real cause is kept for
// logging but never shown to clients.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var outOfStock *order.OutOfStockError
	if errors.As(err, &outOfStock) {
		e := Wrap(err, CodeOutOfStock, outOfStock.Error())
		e.Details = map[string]any{
			"book_id":   outOfStock.BookID,
			"requested": outOfStock.Requested,
			"available": outOfStock.Available,
		}
		return e
	}

	var invalidTransition *order.InvalidStatusTransitionError
	if errors.As(err, &invalidTransition) {
		return Wrap(err, CodeInvalidTransition, invalidTransition.Error())
	}

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, "order not found")
	case errors.Is(err, order.ErrForbidden):
		return Wrap(err, CodeForbidden, "not allowed to manage this order")
	case errors.Is(err, order.ErrEmptyOrderItems),
		errors.Is(err, order.ErrInvalidQuantity):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, catalog.ErrBookNotFound):
		return Wrap(err, CodeBookNotFound, err.Error())
	case errors.Is(err, catalog.ErrAuthorNotFound):
		return Wrap(err, CodeAuthorNotFound, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		return Wrap(err, CodeUserNotFound, "user not found")
	case errors.Is(err, user.ErrEmailExists):
		return Wrap(err, CodeEmailExists, "account already exists")
	case errors.Is(err, user.ErrBadCredentials):
		return Wrap(err, CodeUnauthorized, "invalid email or password")
	case errors.Is(err, upload.ErrUploadNotFound):
		return Wrap(err, CodeUploadNotFound, "upload not found")
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
