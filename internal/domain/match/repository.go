package match

import "context"

// Repository persists match metadata rows keyed by match id.
type Repository interface {
	Upsert(ctx context.Context, info Info) error
}
