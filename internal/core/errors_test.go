// AngelaMos | 2026
// errors_test.go

package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestAppErrorUnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", ValidationError("bad"), ErrInvalidInput},
		{"quota", QuotaExceededError("tasks", 5), ErrQuotaExceeded},
		{"not found", NotFoundError("task"), ErrNotFound},
		{"transition", InvalidTransitionError("completed", "cancel"), ErrInvalidTransition},
		{"forbidden", ForbiddenError("nope"), ErrForbidden},
		{"token expired", TokenExpiredError(), ErrTokenExpired},
		{"token invalid", TokenInvalidError(), ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}

			// Wrapping with context must not break the match.
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("wrapped match failed for %v", tt.sentinel)
			}

			appErr, ok := AsAppError(wrapped)
			if !ok {
				t.Fatal("AsAppError() failed on wrapped error")
			}
			if appErr.Status == 0 {
				t.Error("app error has no HTTP status")
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	if !IsUniqueViolation(fmt.Errorf("insert: %w", unique)) {
		t.Error("23505 not recognized")
	}

	fk := &pgconn.PgError{Code: "23503"}
	if IsUniqueViolation(fk) {
		t.Error("foreign key violation treated as unique violation")
	}

	if IsUniqueViolation(errors.New("plain")) {
		t.Error("non-pg error treated as unique violation")
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"check violation", &pgconn.PgError{Code: "23514"}, false},
		{"cancelled context", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"plain error", errors.New("boom"), false},
		{
			"wrapped deadlock",
			fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40P01"}),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
