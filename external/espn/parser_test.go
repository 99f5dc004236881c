package espn

import (
	"testing"
	"time"

	"github.com/riskibarqy/matchday-etl/internal/domain/match"
	"github.com/riskibarqy/matchday-etl/internal/domain/teamstats"
	"github.com/riskibarqy/matchday-etl/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScoreboard_ReturnsEventIDs(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"events":[{"id":"401","competitions":[]},{"id":402},{"id":"401"},{"name":"no id"}]}`)

	ids, err := NewParser().ParseScoreboard(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"401", "402"}, ids)
}

func TestParseScoreboard_EmptyListing(t *testing.T) {
	t.Parallel()

	ids, err := NewParser().ParseScoreboard([]byte(`{"events":[]}`))
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = NewParser().ParseScoreboard([]byte(`not json`))
	require.Error(t, err)
}

func TestParseSummary_RoundTrip(t *testing.T) {
	t.Parallel()

	record, err := NewParser().ParseSummary("401", mustJSON(t, summaryDoc()))
	require.NoError(t, err)

	assert.Equal(t, "boxscore.form", record.LocatedBy)
	require.Len(t, record.Teams, 2)
	require.Len(t, record.Players, 22)
	for _, item := range record.Teams {
		assert.Equal(t, "401", item.MatchID)
	}
	for _, item := range record.Players {
		assert.Equal(t, "401", item.MatchID)
	}

	info := record.Info
	assert.Equal(t, "401", info.MatchID)
	assert.Equal(t, "83", info.HomeTeamID)
	assert.Equal(t, "86", info.AwayTeamID)
	assert.Equal(t, "Barcelona", info.HomeTeam)
	assert.Equal(t, "Real Madrid", info.AwayTeam)
	assert.Equal(t, time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC), info.Date)
	assert.Equal(t, match.StatusFinished, info.Status)
	assert.Equal(t, "Estadi Olimpic", info.Venue)
	require.NotNil(t, info.HomeScore)
	require.NotNil(t, info.AwayScore)
	assert.Equal(t, 2, *info.HomeScore)
	assert.Equal(t, 1, *info.AwayScore)
	require.NoError(t, info.Validate())
}

func TestParseSummary_StatValuesPreferNumeric(t *testing.T) {
	t.Parallel()

	record, err := NewParser().ParseSummary("401", mustJSON(t, summaryDoc()))
	require.NoError(t, err)

	home := record.Teams[0]
	assert.Equal(t, "home", home.HomeAway)
	assert.Equal(t, "BAR", home.Abbreviation)
	assert.Equal(t, "61.4%", home.Stats["possessionPct"])

	line, _ := home.Split()
	assert.Equal(t, 11, line.Fouls)
	assert.Equal(t, 7, line.Corners)
	assert.InDelta(t, 61.4, line.PossessionPct, 0.0001)

	away := record.Teams[1]
	awayLine, _ := away.Split()
	assert.Equal(t, 0, awayLine.Fouls, "missing foulsCommitted must coerce to zero")
	assert.InDelta(t, 38.6, awayLine.PossessionPct, 0.0001)
}

func TestParseSummary_RosterFields(t *testing.T) {
	t.Parallel()

	record, err := NewParser().ParseSummary("401", mustJSON(t, summaryDoc()))
	require.NoError(t, err)

	sub := record.Players[10]
	assert.Equal(t, "1010", sub.PlayerID)
	assert.Equal(t, "83", sub.TeamID)
	assert.Equal(t, "Barcelona", sub.TeamName)
	assert.Equal(t, "home", sub.HomeAway)
	assert.Equal(t, "Player 1010", sub.FullName)
	assert.Equal(t, "11", sub.Jersey)
	assert.False(t, sub.Starter)
	assert.True(t, sub.SubbedIn)
	assert.Equal(t, "Forward", sub.Position)
	assert.Equal(t, "F", sub.PositionAbbr)
	assert.Equal(t, "https://img/1010.png", sub.Headshot)
	assert.Equal(t, 1, sub.Line().Goals)
	assert.Equal(t, 0, sub.Line().YellowCards)
}

func TestParseSummary_Events(t *testing.T) {
	t.Parallel()

	record, err := NewParser().ParseSummary("401", mustJSON(t, summaryDoc()))
	require.NoError(t, err)

	require.Len(t, record.Events, 2)
	goal := record.Events[0]
	assert.Equal(t, 1, goal.Sequence)
	assert.Equal(t, 25, goal.Minute)
	assert.True(t, goal.IsGoal)
	assert.Equal(t, "Player 1009", goal.PlayerName)
	assert.Equal(t, "83", goal.TeamID)

	card := record.Events[1]
	assert.Equal(t, 2, card.Sequence)
	assert.Equal(t, 67, card.Minute)
	assert.True(t, card.IsYellowCard)
	assert.False(t, card.IsGoal)
}

func TestParseSummary_FallsBackToHeaderCompetitors(t *testing.T) {
	t.Parallel()

	doc := summaryDoc()
	delete(doc["boxscore"].(map[string]any), "form")

	record, err := NewParser().ParseSummary("401", mustJSON(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "header.competitors", record.LocatedBy)
	assert.Equal(t, "83", record.Info.HomeTeamID)
	assert.Equal(t, "86", record.Info.AwayTeamID)
	assert.Len(t, record.Players, 22)
}

func TestParseSummary_FallsBackToBoxscoreTeams(t *testing.T) {
	t.Parallel()

	doc := summaryDoc()
	doc["boxscore"].(map[string]any)["form"] = []any{map[string]any{"team": teamNode("83", "Barcelona", "BAR")}}
	delete(doc, "header")
	doc["game"] = map[string]any{"date": "2025-06-15T18:30:00Z"}

	record, err := NewParser().ParseSummary("401", mustJSON(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "boxscore.teams", record.LocatedBy)
	assert.Equal(t, "83", record.Info.HomeTeamID)
	assert.Equal(t, "86", record.Info.AwayTeamID)
	assert.Nil(t, record.Info.HomeScore)
	assert.Equal(t, time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC), record.Info.Date)
	assert.Empty(t, record.Events)
}

func TestParseSummary_RosterPositionFallback(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"rosters": []any{
			map[string]any{"team": teamNode("1", "Home FC", "HFC"), "roster": []any{}},
			map[string]any{"team": teamNode("2", "Away FC", "AFC"), "roster": []any{}},
		},
	}

	record, err := NewParser().ParseSummary("9", mustJSON(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "1", record.Info.HomeTeamID)
	assert.Equal(t, "2", record.Info.AwayTeamID)
	assert.Equal(t, []teamstats.TeamStat{}, record.Teams)
}

func TestParseSummary_UnrecognizedSchema(t *testing.T) {
	t.Parallel()

	cases := map[string]map[string]any{
		"empty":     {},
		"same team": {"boxscore": map[string]any{"form": []any{map[string]any{"team": teamNode("1", "A", "A")}, map[string]any{"team": teamNode("1", "A", "A")}}}},
		"missing id": {"rosters": []any{
			map[string]any{"team": map[string]any{"displayName": "no id"}},
			map[string]any{"team": teamNode("2", "B", "B")},
		}},
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewParser().ParseSummary("401", mustJSON(t, doc))
			assert.ErrorIs(t, err, usecase.ErrUnrecognizedSchema)
		})
	}
}

type stubLocator struct {
	name string
	ok   bool
}

func (s stubLocator) Name() string { return s.name }

func (s stubLocator) Locate(map[string]any) (teamRef, teamRef, bool) {
	return teamRef{ID: "h"}, teamRef{ID: "a"}, s.ok
}

func TestParser_UsesFirstSuccessfulLocator(t *testing.T) {
	t.Parallel()

	parser := NewParser(stubLocator{name: "first"}, stubLocator{name: "second", ok: true}, stubLocator{name: "third", ok: true})
	record, err := parser.ParseSummary("1", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "second", record.LocatedBy)
}
