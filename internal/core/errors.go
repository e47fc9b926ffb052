// AngelaMos | 2026
// errors.go

package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInvalidInput      = errors.New("invalid input")
	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Fields  map[string]string

	sentinel error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the taxonomy sentinel so callers can match with errors.Is
// without inspecting codes.
func (e *AppError) Unwrap() error {
	return e.sentinel
}

func NewAppError(code, message string, status int, sentinel error) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Status:   status,
		sentinel: sentinel,
	}
}

func ValidationError(message string) *AppError {
	return NewAppError(
		"VALIDATION_ERROR",
		message,
		http.StatusBadRequest,
		ErrInvalidInput,
	)
}

func QuotaExceededError(limitType string, max int) *AppError {
	return NewAppError(
		"QUOTA_EXCEEDED",
		fmt.Sprintf("plan limit reached for %s (max %d)", limitType, max),
		http.StatusBadRequest,
		ErrQuotaExceeded,
	)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		"NOT_FOUND",
		fmt.Sprintf("%s not found", resource),
		http.StatusNotFound,
		ErrNotFound,
	)
}

func InvalidTransitionError(from, action string) *AppError {
	return NewAppError(
		"INVALID_STATE_TRANSITION",
		fmt.Sprintf("cannot %s an event in status %q", action, from),
		http.StatusConflict,
		ErrInvalidTransition,
	)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(
		"UNAUTHORIZED",
		message,
		http.StatusUnauthorized,
		ErrUnauthorized,
	)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(
		"FORBIDDEN",
		message,
		http.StatusForbidden,
		ErrForbidden,
	)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		"TOKEN_EXPIRED",
		"access token has expired",
		http.StatusUnauthorized,
		ErrTokenExpired,
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		"TOKEN_INVALID",
		"access token is invalid",
		http.StatusUnauthorized,
		ErrTokenInvalid,
	)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation, letting repositories translate it to ErrDuplicateKey.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsTransient reports whether err is a storage failure worth retrying as a
// whole transactional unit: serialization failures, deadlocks, and broken
// connections. Logic errors and constraint violations are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"08000", // connection_exception
			"08003", // connection_does_not_exist
			"08006", // connection_failure
			"57P03": // cannot_connect_now
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return pgconn.SafeToRetry(err)
}
