package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/matchday-etl/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{teams: make(map[string]team.Team)}
}

// Upsert keeps the latest non-empty display fields seen for a team.
func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	teamID := strings.TrimSpace(item.ID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrMissingKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = teamID
	if current, ok := r.teams[teamID]; ok {
		item.Name = coalesce(item.Name, current.Name)
		item.Abbreviation = coalesce(item.Abbreviation, current.Abbreviation)
		item.Logo = coalesce(item.Logo, current.Logo)
	}
	r.teams[teamID] = item
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) exists(teamID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.teams[teamID]
	return ok
}

func (r *TeamRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.teams)
}
