package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
	// ErrUnrecognizedSchema marks a summary payload where no team locator found a home/away pair.
	ErrUnrecognizedSchema = crerr.New("unrecognized summary schema")
)
