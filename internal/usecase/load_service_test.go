package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/matchday-etl/internal/domain/player"
	"github.com/riskibarqy/matchday-etl/internal/domain/playerstats"
	"github.com/riskibarqy/matchday-etl/internal/domain/team"
	"github.com/riskibarqy/matchday-etl/internal/domain/teamstats"
	matchmock "github.com/riskibarqy/matchday-etl/internal/mocks/domain/match"
	matcheventmock "github.com/riskibarqy/matchday-etl/internal/mocks/domain/matchevent"
	playermock "github.com/riskibarqy/matchday-etl/internal/mocks/domain/player"
	playerstatsmock "github.com/riskibarqy/matchday-etl/internal/mocks/domain/playerstats"
	teammock "github.com/riskibarqy/matchday-etl/internal/mocks/domain/team"
	teamstatsmock "github.com/riskibarqy/matchday-etl/internal/mocks/domain/teamstats"
	"github.com/riskibarqy/matchday-etl/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type loadMocks struct {
	matches     *matchmock.Repository
	teams       *teammock.Repository
	teamStats   *teamstatsmock.Repository
	players     *playermock.Repository
	playerStats *playerstatsmock.Repository
	events      *matcheventmock.Repository

	mu    sync.Mutex
	calls []string
}

func newLoadMocks(t *testing.T) *loadMocks {
	return &loadMocks{
		matches:     matchmock.NewRepository(t),
		teams:       teammock.NewRepository(t),
		teamStats:   teamstatsmock.NewRepository(t),
		players:     playermock.NewRepository(t),
		playerStats: playerstatsmock.NewRepository(t),
		events:      matcheventmock.NewRepository(t),
	}
}

func (m *loadMocks) record(name string) func(mock.Arguments) {
	return func(mock.Arguments) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.calls = append(m.calls, name)
	}
}

func (m *loadMocks) service() *LoadService {
	return NewLoadService(LoadRepositories{
		Matches:     m.matches,
		Teams:       m.teams,
		TeamStats:   m.teamStats,
		Players:     m.players,
		PlayerStats: m.playerStats,
		Events:      m.events,
	}, logging.NewNop())
}

func TestLoadService_Load_WritesInDependencyOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	record := sampleRecord("401", "83", "86")
	m := newLoadMocks(t)

	m.matches.On("Upsert", mock.Anything, record.Info).Run(m.record("match")).Return(nil).Once()
	m.teams.On("Upsert", mock.Anything, mock.AnythingOfType("team.Team")).Run(m.record("team")).Return(nil).Twice()
	m.teamStats.On("Upsert", mock.Anything, mock.AnythingOfType("teamstats.TeamStat")).Run(m.record("team_stat")).Return(nil).Twice()
	m.players.On("Upsert", mock.Anything, mock.AnythingOfType("player.Player")).Run(m.record("player")).Return(nil).Twice()
	m.playerStats.On("Upsert", mock.Anything, mock.AnythingOfType("playerstats.PlayerStat")).Run(m.record("player_stat")).Return(nil).Twice()
	m.events.On("ReplaceByMatch", mock.Anything, "401", record.Events).Run(m.record("events")).Return(nil).Once()

	result := m.service().Load(ctx, record)

	assert.Equal(t, LoadStatusLoaded, result.Status)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 2, result.TeamsWritten)
	assert.Equal(t, 2, result.TeamStatsWritten)
	assert.Equal(t, 2, result.PlayersWritten)
	assert.Equal(t, 2, result.PlayerStatsWritten)
	assert.Equal(t, 1, result.EventsWritten)
	assert.Equal(t, []string{
		"match", "team", "team", "team_stat", "team_stat",
		"player", "player", "player_stat", "player_stat", "events",
	}, m.calls)
}

func TestLoadService_Load_MatchFailureStopsMatch(t *testing.T) {
	t.Parallel()

	m := newLoadMocks(t)
	m.matches.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	result := m.service().Load(context.Background(), sampleRecord("401", "83", "86"))

	assert.Equal(t, LoadStatusFailed, result.Status)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, entityMatch, result.Failures[0].Entity)
	m.teams.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestLoadService_Load_FailedTeamSkipsOnlyItsStat(t *testing.T) {
	t.Parallel()

	m := newLoadMocks(t)
	m.matches.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	m.teams.On("Upsert", mock.Anything, mock.MatchedBy(func(item team.Team) bool { return item.ID == "83" })).
		Return(errors.New("value too long for type character varying(64)")).Once()
	m.teams.On("Upsert", mock.Anything, mock.MatchedBy(func(item team.Team) bool { return item.ID == "86" })).
		Return(nil).Once()
	m.teamStats.On("Upsert", mock.Anything, mock.MatchedBy(func(stat teamstats.TeamStat) bool { return stat.TeamID == "86" })).
		Return(nil).Once()
	m.players.On("Upsert", mock.Anything, mock.Anything).Return(nil).Twice()
	m.playerStats.On("Upsert", mock.Anything, mock.MatchedBy(func(stat playerstats.PlayerStat) bool { return stat.PlayerID == "83-9" })).
		Return(errors.New("deadlock detected")).Once()
	m.playerStats.On("Upsert", mock.Anything, mock.MatchedBy(func(stat playerstats.PlayerStat) bool { return stat.PlayerID == "86-1" })).
		Return(nil).Once()
	m.events.On("ReplaceByMatch", mock.Anything, "401", mock.Anything).Return(nil).Once()

	result := m.service().Load(context.Background(), sampleRecord("401", "83", "86"))

	assert.Equal(t, LoadStatusPartial, result.Status)
	assert.Equal(t, 1, result.TeamsWritten)
	assert.Equal(t, 1, result.TeamStatsWritten)
	assert.Equal(t, 2, result.PlayersWritten)
	assert.Equal(t, 1, result.PlayerStatsWritten)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, entityTeam, result.Failures[0].Entity)
	assert.Equal(t, "83", result.Failures[0].Key)
	assert.Equal(t, entityPlayerStat, result.Failures[1].Entity)
}

func TestLoadService_Load_InvalidPlayerNeverReachesRepository(t *testing.T) {
	t.Parallel()

	record := sampleRecord("401", "83", "86")
	record.Players[1].PlayerID = ""
	record.Events = nil

	m := newLoadMocks(t)
	m.matches.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	m.teams.On("Upsert", mock.Anything, mock.Anything).Return(nil).Twice()
	m.teamStats.On("Upsert", mock.Anything, mock.Anything).Return(nil).Twice()
	m.players.On("Upsert", mock.Anything, mock.MatchedBy(func(item player.Player) bool { return item.ID == "83-9" })).Return(nil).Once()
	m.playerStats.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	m.events.On("ReplaceByMatch", mock.Anything, "401", mock.Anything).Return(nil).Once()

	result := m.service().Load(context.Background(), record)

	assert.Equal(t, LoadStatusPartial, result.Status)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, entityPlayer, result.Failures[0].Entity)
}

func TestLoadService_Load_WritesMatchSidesWithoutBoxScoreTeams(t *testing.T) {
	t.Parallel()

	record := sampleRecord("401", "83", "86")
	record.Teams = nil
	record.Events = nil

	m := newLoadMocks(t)
	m.matches.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	m.teams.On("Upsert", mock.Anything, team.Team{ID: "83", Name: "Home 83"}).Run(m.record("team")).Return(nil).Once()
	m.teams.On("Upsert", mock.Anything, team.Team{ID: "86", Name: "Away 86"}).Run(m.record("team")).Return(nil).Once()
	m.players.On("Upsert", mock.Anything, mock.Anything).Run(m.record("player")).Return(nil).Twice()
	m.playerStats.On("Upsert", mock.Anything, mock.Anything).Return(nil).Twice()
	m.events.On("ReplaceByMatch", mock.Anything, "401", mock.Anything).Return(nil).Once()

	result := m.service().Load(context.Background(), record)

	assert.Equal(t, LoadStatusLoaded, result.Status)
	assert.Equal(t, 2, result.TeamsWritten)
	assert.Equal(t, 0, result.TeamStatsWritten)
	assert.Equal(t, 2, result.PlayerStatsWritten)
	assert.Equal(t, []string{"team", "team", "player", "player"}, m.calls)
	m.teamStats.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
