package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/matchday-etl/internal/domain/rawdata"
)

type rawKey struct {
	source    string
	kind      string
	entityKey string
}

// RawDataRepository keeps the latest payload per (source, kind, entity key).
type RawDataRepository struct {
	mu   sync.RWMutex
	rows map[rawKey]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{rows: make(map[rawKey]rawdata.Payload)}
}

func (r *RawDataRepository) Upsert(_ context.Context, item rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[rawKey{source: item.Source, kind: item.Kind, entityKey: item.EntityKey}] = item
	return nil
}

func (r *RawDataRepository) Get(source, kind, entityKey string) (rawdata.Payload, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.rows[rawKey{source: source, kind: kind, entityKey: entityKey}]
	return item, ok
}
