// AngelaMos | 2026
// errors.go

package core

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrCapacityExceeded = errors.New("slot capacity exceeded")
	ErrDuplicateBooking = errors.New("member already booked on slot")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenRevoked     = errors.New("token revoked")
	ErrTokenInvalid     = errors.New("token invalid")
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgFKViolation     = "23503"
	pgInvalidText     = "22P02"
)

type AppError struct {
	Err        error  `json:"-"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, statusCode int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest, "VALIDATION_ERROR")
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrNotFound, resource+" not found", http.StatusNotFound, "NOT_FOUND")
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "insufficient permissions"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func CapacityExceededError() *AppError {
	return NewAppError(
		ErrCapacityExceeded,
		"time slot is full",
		http.StatusConflict,
		"CAPACITY_EXCEEDED",
	)
}

func DuplicateBookingError() *AppError {
	return NewAppError(
		ErrDuplicateBooking,
		"member already has an active booking on this slot",
		http.StatusConflict,
		"DUPLICATE_BOOKING",
	)
}

func StoreUnavailableError() *AppError {
	return NewAppError(
		ErrStoreUnavailable,
		"service temporarily unavailable",
		http.StatusServiceUnavailable,
		"STORE_UNAVAILABLE",
	)
}

func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, "token has expired", http.StatusUnauthorized, "TOKEN_EXPIRED")
}

func TokenRevokedError() *AppError {
	return NewAppError(ErrTokenRevoked, "token has been revoked", http.StatusUnauthorized, "TOKEN_REVOKED")
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "token is invalid", http.StatusUnauthorized, "TOKEN_INVALID")
}

// PgError returns the Postgres error carried by err, if any.
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func IsUniqueViolation(err error) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == pgUniqueViolation
}

func IsCheckViolation(err error) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == pgCheckViolation
}

func IsForeignKeyViolation(err error) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == pgFKViolation
}

// IsInvalidTextRepresentation reports values Postgres could not parse for
// the column type, such as a non-uuid string compared to a uuid column.
func IsInvalidTextRepresentation(err error) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == pgInvalidText
}

// ConstraintName is the violated constraint reported by Postgres, or "".
func ConstraintName(err error) string {
	if pgErr, ok := PgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}

// IsConnectionError reports failures to reach the database at all, as
// opposed to errors the database returned for a statement.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

// WrapStoreError annotates err with op and classifies connection failures as
// ErrStoreUnavailable so callers can tell "could not ask" from "asked and
// got an answer". A malformed id names no row, so it is ErrNotFound.
func WrapStoreError(op string, err error) error {
	if IsInvalidTextRepresentation(err) {
		return fmt.Errorf("%s: malformed id: %w: %w", op, ErrNotFound, err)
	}
	if IsConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
