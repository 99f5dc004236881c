package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday-etl/internal/domain/playerstats"
	"github.com/riskibarqy/matchday-etl/internal/domain/teamstats"
)

type statKey struct {
	matchID  string
	entityID string
}

// TeamStatsRepository keeps one row per (match, team).
type TeamStatsRepository struct {
	mu   sync.RWMutex
	rows map[statKey]teamstats.TeamStat
}

func NewTeamStatsRepository() *TeamStatsRepository {
	return &TeamStatsRepository{rows: make(map[statKey]teamstats.TeamStat)}
}

func (r *TeamStatsRepository) Upsert(_ context.Context, stat teamstats.TeamStat) error {
	if stat.MatchID == "" || stat.TeamID == "" {
		return fmt.Errorf("%w: team stat requires match id and team id", ErrMissingKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stat.Stats = maps.Clone(stat.Stats)
	r.rows[statKey{matchID: stat.MatchID, entityID: stat.TeamID}] = stat
	return nil
}

func (r *TeamStatsRepository) ListByMatch(_ context.Context, matchID string) ([]teamstats.TeamStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teamstats.TeamStat, 0, 2)
	for key, row := range r.rows {
		if key.matchID == matchID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (r *TeamStatsRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}

// PlayerStatsRepository keeps one row per (match, player).
type PlayerStatsRepository struct {
	mu   sync.RWMutex
	rows map[statKey]playerstats.PlayerStat
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{rows: make(map[statKey]playerstats.PlayerStat)}
}

func (r *PlayerStatsRepository) Upsert(_ context.Context, stat playerstats.PlayerStat) error {
	if stat.MatchID == "" || stat.PlayerID == "" {
		return fmt.Errorf("%w: player stat requires match id and player id", ErrMissingKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stat.Stats = maps.Clone(stat.Stats)
	r.rows[statKey{matchID: stat.MatchID, entityID: stat.PlayerID}] = stat
	return nil
}

func (r *PlayerStatsRepository) ListByMatch(_ context.Context, matchID string) ([]playerstats.PlayerStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.PlayerStat, 0)
	for key, row := range r.rows {
		if key.matchID == matchID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *PlayerStatsRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}
