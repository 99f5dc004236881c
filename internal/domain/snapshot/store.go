package snapshot

import "context"

type Store interface {
	Save(ctx context.Context, kind Kind, matchID string, raw []byte) (Snapshot, error)
	// Latest returns ErrNotFound when no snapshot of kind exists for matchID.
	Latest(ctx context.Context, kind Kind, matchID string) (Snapshot, error)
	Read(ctx context.Context, item Snapshot) ([]byte, error)
}
