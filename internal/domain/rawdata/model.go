package rawdata

import "time"

const SourceESPN = "espn"

// Payload is the database copy of a snapshot, keyed by (source, kind, entity_key).
type Payload struct {
	Source      string
	Kind        string
	EntityKey   string
	MatchID     string
	FilePath    string
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}
