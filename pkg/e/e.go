package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Error kinds. Every error leaving the service layer unwraps to exactly one of them.
var (
	ErrValidation          = errors.New("validation failed")
	ErrTransition          = errors.New("invalid transition")
	ErrDuplicateVote       = errors.New("duplicate vote")
	ErrLimitExceeded       = errors.New("limit exceeded")
	ErrNotFound            = errors.New("not found")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrInfrastructure      = errors.New("infrastructure unavailable")
)

// Stable codes rendered to clients.
const (
	CodeValidation     = "validation_failed"
	CodeTransition     = "invalid_transition"
	CodeStaleState     = "stale_state"
	CodeDuplicateVote  = "duplicate_vote"
	CodeLimitExceeded  = "limit_exceeded"
	CodeNotFound       = "not_found"
	CodeConflict       = "concurrency_conflict"
	CodeInfrastructure = "infrastructure_unavailable"
	CodeInternal       = "internal_error"
)

// Error is a domain error carrying a stable code, a human readable reason and,
// where the caller can do something about it, a corrective hint.
type Error struct {
	Kind   error
	Code   string
	Reason string
	Hint   string
}

func (err *Error) Error() string {
	if err.Reason == "" {
		return err.Kind.Error()
	}
	return err.Kind.Error() + ": " + err.Reason
}

func (err *Error) Unwrap() error { return err.Kind }

func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Code: CodeValidation, Reason: fmt.Sprintf(format, args...)}
}

func Transition(format string, args ...any) error {
	return &Error{Kind: ErrTransition, Code: CodeTransition, Reason: fmt.Sprintf(format, args...)}
}

func StaleState(format string, args ...any) error {
	return &Error{
		Kind:   ErrTransition,
		Code:   CodeStaleState,
		Reason: fmt.Sprintf(format, args...),
		Hint:   "reload the incident and retry against its current status",
	}
}

func DuplicateVote(reason string) error {
	return &Error{
		Kind:   ErrDuplicateVote,
		Code:   CodeDuplicateVote,
		Reason: reason,
		Hint:   "each voter may upvote an incident once",
	}
}

func LimitExceeded(reason string) error {
	return &Error{
		Kind:   ErrLimitExceeded,
		Code:   CodeLimitExceeded,
		Reason: reason,
		Hint:   "register to continue",
	}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Code: CodeNotFound, Reason: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{
		Kind:   ErrConcurrencyConflict,
		Code:   CodeConflict,
		Reason: fmt.Sprintf(format, args...),
		Hint:   "retry the request",
	}
}

func Infrastructure(op string, err error) error {
	return fmt.Errorf("%s: %w", op, &Error{
		Kind:   ErrInfrastructure,
		Code:   CodeInfrastructure,
		Reason: err.Error(),
		Hint:   "temporary failure, retry later",
	})
}

// Describe extracts the client-facing code, reason and hint of err.
func Describe(err error) (code, reason, hint string) {
	var de *Error
	if errors.As(err, &de) {
		return de.Code, de.Reason, de.Hint
	}
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation, err.Error(), ""
	case errors.Is(err, ErrNotFound):
		return CodeNotFound, err.Error(), ""
	case errors.Is(err, ErrTransition):
		return CodeTransition, err.Error(), ""
	case errors.Is(err, ErrDuplicateVote):
		return CodeDuplicateVote, err.Error(), ""
	case errors.Is(err, ErrLimitExceeded):
		return CodeLimitExceeded, err.Error(), ""
	case errors.Is(err, ErrConcurrencyConflict):
		return CodeConflict, err.Error(), ""
	case errors.Is(err, ErrInfrastructure):
		return CodeInfrastructure, "temporary failure", ""
	}
	return CodeInternal, "internal error", ""
}

// IsDomain reports whether err is terminal for the caller: retrying it would
// repeat an invalid operation.
func IsDomain(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrTransition) ||
		errors.Is(err, ErrDuplicateVote) ||
		errors.Is(err, ErrLimitExceeded) ||
		errors.Is(err, ErrNotFound)
}

// IsRetryable is true only for infrastructure failures.
func IsRetryable(err error) bool {
	return err != nil && errors.Is(err, ErrInfrastructure)
}

// WrapError maps driver and context errors into the error taxonomy.
func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Infrastructure(op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, Conflict("unique violation on %s", pgErr.ConstraintName))
		case "23503":
			return fmt.Errorf("%s: %w", op, NotFound("referenced row does not exist"))
		case "23514", "22P02":
			return fmt.Errorf("%s: %w", op, Validation("constraint %s rejected the write", pgErr.ConstraintName))
		default:
			return Infrastructure(op, fmt.Errorf("pg error %s: %w", pgErr.Code, err))
		}
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, NotFound("no such document"))
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, Conflict("duplicate key"))
	}
	if errors.Is(err, goredis.Nil) {
		return fmt.Errorf("%s: %w", op, NotFound("no such key"))
	}
	return Infrastructure(op, err)
}
