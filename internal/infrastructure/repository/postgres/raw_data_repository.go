package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-etl/internal/domain/rawdata"
	qb "github.com/riskibarqy/matchday-etl/internal/platform/querybuilder"
)

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

// Upsert keeps the newest payload per (source, kind, entity_key). An identical hash is a no-op.
func (r *RawDataRepository) Upsert(ctx context.Context, item rawdata.Payload) error {
	query, args, err := qb.InsertModel("raw_snapshots", rawSnapshotInsertModel{
		Source:      item.Source,
		Kind:        item.Kind,
		EntityKey:   item.EntityKey,
		MatchID:     nullableString(item.MatchID),
		FilePath:    item.FilePath,
		Payload:     item.PayloadJSON,
		PayloadHash: item.PayloadHash,
		FetchedAt:   item.FetchedAt.UTC(),
	}, `ON CONFLICT (source, kind, entity_key)
DO UPDATE SET
    match_id = EXCLUDED.match_id,
    file_path = EXCLUDED.file_path,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at,
    ingested_at = NOW()
WHERE raw_snapshots.payload_hash IS DISTINCT FROM EXCLUDED.payload_hash`)
	if err != nil {
		return fmt.Errorf("build upsert raw snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert raw snapshot kind=%s key=%s: %w", item.Kind, item.EntityKey, classify(err))
	}
	return nil
}

type rawSnapshotInsertModel struct {
	Source      string    `db:"source"`
	Kind        string    `db:"kind"`
	EntityKey   string    `db:"entity_key"`
	MatchID     *string   `db:"match_id"`
	FilePath    string    `db:"file_path"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}
