package team

import "context"

// Repository describes team reference persistence. Upsert is last-write-wins on team id.
type Repository interface {
	Upsert(ctx context.Context, item Team) error
}
