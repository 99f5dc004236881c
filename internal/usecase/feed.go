package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-etl/internal/domain/match"
	"github.com/riskibarqy/matchday-etl/internal/domain/matchevent"
	"github.com/riskibarqy/matchday-etl/internal/domain/playerstats"
	"github.com/riskibarqy/matchday-etl/internal/domain/teamstats"
)

// MatchFeed returns raw provider responses. Non-2xx responses are errors.
type MatchFeed interface {
	FetchScoreboard(ctx context.Context, date time.Time) ([]byte, error)
	FetchSummary(ctx context.Context, matchID string) ([]byte, error)
}

type FeedParser interface {
	// ParseScoreboard returns event identifiers in listing order without duplicates.
	ParseScoreboard(raw []byte) ([]string, error)
	// ParseSummary returns ErrUnrecognizedSchema when the home/away pair cannot be located.
	ParseSummary(matchID string, raw []byte) (MatchRecord, error)
}

// MatchRecord is the normalized, in-memory result of extracting one summary snapshot.
type MatchRecord struct {
	Info      match.Info
	Teams     []teamstats.TeamStat
	Players   []playerstats.PlayerStat
	Events    []matchevent.Event
	LocatedBy string
}
