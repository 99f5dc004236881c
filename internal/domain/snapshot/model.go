package snapshot

import (
	"time"

	crerr "github.com/cockroachdb/errors"
)

type Kind string

const (
	KindScoreboard Kind = "scoreboard"
	KindSummary    Kind = "summary"
)

// TimestampLayout sorts lexicographically in fetch order.
const TimestampLayout = "20060102T150405Z"

var ErrNotFound = crerr.New("snapshot not found")

// Snapshot describes one persisted raw response. The file is never rewritten.
type Snapshot struct {
	Kind      Kind
	MatchID   string
	FetchedAt time.Time
	Path      string
}
