package playerstats

import "context"

// Repository stores one row per (match_id, player_id).
type Repository interface {
	Upsert(ctx context.Context, stat PlayerStat) error
}
