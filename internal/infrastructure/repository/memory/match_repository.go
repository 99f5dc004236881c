package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/matchday-etl/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Info
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{matches: make(map[string]match.Info)}
}

func (r *MatchRepository) Upsert(_ context.Context, info match.Info) error {
	matchID := strings.TrimSpace(info.MatchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrMissingKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	info.MatchID = matchID
	r.matches[matchID] = info
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Info, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.matches)
}
