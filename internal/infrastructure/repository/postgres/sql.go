package postgres

import (
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// SQLSTATE classes the loader reports separately from generic failures.
const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeNotNullViolation    pq.ErrorCode = "23502"
	codeCheckViolation      pq.ErrorCode = "23514"
	codeStringTruncation    pq.ErrorCode = "22001"
	codeSerialization       pq.ErrorCode = "40001"
	codeDeadlock            pq.ErrorCode = "40P01"
)

var (
	ErrConstraintViolation = crerr.New("constraint violation")
	ErrInvalidValue        = crerr.New("invalid column value")
	ErrRetryable           = crerr.New("retryable transaction failure")
)

// classify marks driver errors with a sentinel so callers can tell data problems from
// infrastructure problems without importing lib/pq.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !crerr.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeUniqueViolation, codeForeignKeyViolation, codeNotNullViolation, codeCheckViolation:
		return crerr.Mark(err, ErrConstraintViolation)
	case codeStringTruncation:
		return crerr.Mark(err, ErrInvalidValue)
	case codeSerialization, codeDeadlock:
		return crerr.Mark(err, ErrRetryable)
	default:
		return err
	}
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	v := value
	return &v
}

func nullableTime(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	v := value.UTC()
	return &v
}
