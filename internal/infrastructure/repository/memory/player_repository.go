package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/matchday-etl/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
	teams   *TeamRepository
}

// NewPlayerRepository checks team ids against teams when it is non-nil.
func NewPlayerRepository(teams *TeamRepository) *PlayerRepository {
	return &PlayerRepository{players: make(map[string]player.Player), teams: teams}
}

// Upsert keeps the latest non-empty fields seen for a player.
func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) error {
	playerID := strings.TrimSpace(item.ID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrMissingKey)
	}
	if item.TeamID != "" && r.teams != nil && !r.teams.exists(item.TeamID) {
		return fmt.Errorf("%w: player id=%s team id=%s", ErrUnknownReference, playerID, item.TeamID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = playerID
	if current, ok := r.players[playerID]; ok {
		item.FullName = coalesce(item.FullName, current.FullName)
		item.TeamID = coalesce(item.TeamID, current.TeamID)
		item.Position = coalesce(item.Position, current.Position)
		item.PositionAbbr = coalesce(item.PositionAbbr, current.PositionAbbr)
		item.Jersey = coalesce(item.Jersey, current.Jersey)
		item.Headshot = coalesce(item.Headshot, current.Headshot)
	}
	r.players[playerID] = item
	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.players)
}
