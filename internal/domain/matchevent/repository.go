package matchevent

import "context"

type Repository interface {
	// ReplaceByMatch drops the stored events of matchID and writes items in their place.
	ReplaceByMatch(ctx context.Context, matchID string, items []Event) error
}
