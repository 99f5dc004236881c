package teamstats

import "context"

// Repository stores one row per (match_id, team_id).
type Repository interface {
	Upsert(ctx context.Context, stat TeamStat) error
}
