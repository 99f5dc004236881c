package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/matchday-etl/internal/domain/matchevent"
)

type MatchEventRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]matchevent.Event
}

func NewMatchEventRepository() *MatchEventRepository {
	return &MatchEventRepository{byMatch: make(map[string][]matchevent.Event)}
}

func (r *MatchEventRepository) ReplaceByMatch(_ context.Context, matchID string, items []matchevent.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(items) == 0 {
		delete(r.byMatch, matchID)
		return nil
	}
	r.byMatch[matchID] = slices.Clone(items)
	return nil
}

func (r *MatchEventRepository) ListByMatch(_ context.Context, matchID string) ([]matchevent.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.byMatch[matchID]), nil
}
