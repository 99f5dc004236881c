package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-etl/internal/domain/match"
	"github.com/riskibarqy/matchday-etl/internal/domain/matchevent"
	"github.com/riskibarqy/matchday-etl/internal/domain/playerstats"
	"github.com/riskibarqy/matchday-etl/internal/domain/teamstats"
)

type stubFeed struct {
	mu           sync.Mutex
	scoreboard   []byte
	scoreErr     error
	summaryErrs  map[string]error
	summaryCalls []string
}

func (f *stubFeed) FetchScoreboard(_ context.Context, _ time.Time) ([]byte, error) {
	if f.scoreErr != nil {
		return nil, f.scoreErr
	}
	return f.scoreboard, nil
}

func (f *stubFeed) FetchSummary(_ context.Context, matchID string) ([]byte, error) {
	f.mu.Lock()
	f.summaryCalls = append(f.summaryCalls, matchID)
	f.mu.Unlock()

	if err := f.summaryErrs[matchID]; err != nil {
		return nil, err
	}
	return []byte(`{"header":{"id":"` + matchID + `"}}`), nil
}

// stubParser resolves summaries by match id instead of by payload content.
type stubParser struct {
	ids     []string
	records map[string]MatchRecord
}

func (p stubParser) ParseScoreboard(_ []byte) ([]string, error) {
	return p.ids, nil
}

func (p stubParser) ParseSummary(matchID string, _ []byte) (MatchRecord, error) {
	record, ok := p.records[matchID]
	if !ok {
		return MatchRecord{}, ErrUnrecognizedSchema
	}
	return record, nil
}

type stubHandoff struct {
	mu      sync.Mutex
	err     error
	batches []MatchBatch
}

func (h *stubHandoff) Publish(_ context.Context, batch MatchBatch) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batches = append(h.batches, batch)
	return h.err
}

func sampleRecord(matchID, homeID, awayID string) MatchRecord {
	home, away := 2, 1
	return MatchRecord{
		Info: match.Info{
			MatchID:    matchID,
			Date:       time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC),
			HomeTeam:   "Home " + homeID,
			AwayTeam:   "Away " + awayID,
			HomeTeamID: homeID,
			AwayTeamID: awayID,
			HomeScore:  &home,
			AwayScore:  &away,
			Status:     match.StatusFinished,
		},
		Teams: []teamstats.TeamStat{
			{MatchID: matchID, TeamID: homeID, TeamName: "Home " + homeID, HomeAway: "home", Stats: map[string]any{"foulsCommitted": 11.0}},
			{MatchID: matchID, TeamID: awayID, TeamName: "Away " + awayID, HomeAway: "away", Stats: map[string]any{"foulsCommitted": 9.0}},
		},
		Players: []playerstats.PlayerStat{
			{MatchID: matchID, PlayerID: homeID + "-9", TeamID: homeID, FullName: "Striker", Starter: true, Stats: map[string]any{"totalGoals": 2.0}},
			{MatchID: matchID, PlayerID: awayID + "-1", TeamID: awayID, FullName: "Keeper", Starter: true, Stats: map[string]any{"saves": 4.0}},
		},
		Events: []matchevent.Event{
			{MatchID: matchID, Sequence: 1, TeamID: homeID, PlayerID: homeID + "-9", Type: "Goal", Minute: 26, IsGoal: true},
		},
		LocatedBy: "stub",
	}
}
