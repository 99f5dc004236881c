package player

import "context"

// Repository describes player reference persistence. Upsert is last-write-wins on player id.
type Repository interface {
	Upsert(ctx context.Context, item Player) error
}
