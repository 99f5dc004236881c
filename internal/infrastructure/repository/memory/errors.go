package memory

import crerr "github.com/cockroachdb/errors"

var (
	// ErrMissingKey is returned when a row lacks part of its natural key.
	ErrMissingKey = crerr.New("missing row key")
	// ErrUnknownReference mirrors a foreign key violation: the referenced row was never written.
	ErrUnknownReference = crerr.New("unknown referenced row")
)

// coalesce keeps current when next is blank.
func coalesce(next, current string) string {
	if next == "" {
		return current
	}
	return next
}
