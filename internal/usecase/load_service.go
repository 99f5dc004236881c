package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/matchday-etl/internal/domain/match"
	"github.com/riskibarqy/matchday-etl/internal/domain/matchevent"
	"github.com/riskibarqy/matchday-etl/internal/domain/player"
	"github.com/riskibarqy/matchday-etl/internal/domain/playerstats"
	"github.com/riskibarqy/matchday-etl/internal/domain/team"
	"github.com/riskibarqy/matchday-etl/internal/domain/teamstats"
	"github.com/riskibarqy/matchday-etl/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	LoadStatusLoaded  = "loaded"
	LoadStatusPartial = "partial"
	LoadStatusFailed  = "failed"
)

const (
	entityMatch       = "match"
	entityTeam        = "team"
	entityTeamStat    = "team_stat"
	entityPlayer      = "player"
	entityPlayerStat  = "player_stat"
	entityMatchEvents = "match_events"
)

type LoadRepositories struct {
	Matches     match.Repository
	Teams       team.Repository
	TeamStats   teamstats.Repository
	Players     player.Repository
	PlayerStats playerstats.Repository
	Events      matchevent.Repository
}

type LoadService struct {
	repos  LoadRepositories
	logger *logging.Logger
}

type LoadFailure struct {
	Entity string
	Key    string
	Err    error
}

type LoadResult struct {
	MatchID            string
	Status             string
	TeamsWritten       int
	TeamStatsWritten   int
	PlayersWritten     int
	PlayerStatsWritten int
	EventsWritten      int
	Failures           []LoadFailure
}

func NewLoadService(repos LoadRepositories, logger *logging.Logger) *LoadService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LoadService{repos: repos, logger: logger}
}

// Load writes one match: match row, teams, team stats, players, player stats, events.
// Every statement is attempted independently. A failed match row stops the match; a
// failed team or player row skips only the stat row that references it.
func (s *LoadService) Load(ctx context.Context, record MatchRecord) LoadResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.LoadService.Load")
	defer span.End()

	matchID := record.Info.MatchID
	span.SetAttributes(attribute.String("matchday.match_id", matchID))
	result := LoadResult{MatchID: matchID}

	fail := func(entity, key string, err error) {
		result.Failures = append(result.Failures, LoadFailure{Entity: entity, Key: key, Err: err})
		s.logger.ErrorContext(ctx, "load statement failed",
			"stage", "load",
			"match_id", matchID,
			"entity", entity,
			"key", key,
			"error", err,
		)
	}

	if err := s.repos.Matches.Upsert(ctx, record.Info); err != nil {
		fail(entityMatch, matchID, err)
		result.Status = LoadStatusFailed
		return result
	}

	failedTeams := make(map[string]struct{})
	for _, ref := range teamReferences(record) {
		if err := s.upsertTeam(ctx, ref); err != nil {
			fail(entityTeam, ref.ID, err)
			failedTeams[ref.ID] = struct{}{}
			continue
		}
		result.TeamsWritten++
	}
	for _, stat := range record.Teams {
		if _, failed := failedTeams[stat.TeamID]; failed {
			continue
		}
		if err := s.repos.TeamStats.Upsert(ctx, stat); err != nil {
			fail(entityTeamStat, stat.TeamID, err)
			continue
		}
		result.TeamStatsWritten++
	}

	failedPlayers := make(map[string]struct{})
	for _, stat := range record.Players {
		ref := player.Player{
			ID:           stat.PlayerID,
			FullName:     stat.FullName,
			TeamID:       stat.TeamID,
			Position:     stat.Position,
			PositionAbbr: stat.PositionAbbr,
			Jersey:       stat.Jersey,
			Headshot:     stat.Headshot,
		}
		if err := s.upsertPlayer(ctx, ref); err != nil {
			fail(entityPlayer, stat.PlayerID, err)
			failedPlayers[stat.PlayerID] = struct{}{}
			continue
		}
		result.PlayersWritten++
	}
	for _, stat := range record.Players {
		if _, failed := failedPlayers[stat.PlayerID]; failed {
			continue
		}
		if err := s.repos.PlayerStats.Upsert(ctx, stat); err != nil {
			fail(entityPlayerStat, stat.PlayerID, err)
			continue
		}
		result.PlayerStatsWritten++
	}

	if s.repos.Events != nil {
		if err := s.repos.Events.ReplaceByMatch(ctx, matchID, record.Events); err != nil {
			fail(entityMatchEvents, matchID, err)
		} else {
			result.EventsWritten = len(record.Events)
		}
	}

	result.Status = LoadStatusLoaded
	if len(result.Failures) > 0 {
		result.Status = LoadStatusPartial
	}
	s.logger.InfoContext(ctx, "match loaded",
		"match_id", matchID,
		"status", result.Status,
		"team_stats", result.TeamStatsWritten,
		"player_stats", result.PlayerStatsWritten,
		"events", result.EventsWritten,
		"failures", len(result.Failures),
	)
	return result
}

func (s *LoadService) upsertTeam(ctx context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.repos.Teams.Upsert(ctx, item)
}

func (s *LoadService) upsertPlayer(ctx context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.repos.Players.Upsert(ctx, item)
}

// teamReferences lists every team the record points at, de-duplicated by id. Box score
// blocks win over the match sides and roster team ids for display fields.
func teamReferences(record MatchRecord) []team.Team {
	seen := make(map[string]struct{})
	refs := make([]team.Team, 0, 2)
	add := func(item team.Team) {
		item.ID = strings.TrimSpace(item.ID)
		if item.ID == "" {
			return
		}
		if _, ok := seen[item.ID]; ok {
			return
		}
		seen[item.ID] = struct{}{}
		refs = append(refs, item)
	}

	for _, stat := range record.Teams {
		add(team.Team{ID: stat.TeamID, Name: stat.TeamName, Abbreviation: stat.Abbreviation, Logo: stat.Logo})
	}
	add(team.Team{ID: record.Info.HomeTeamID, Name: record.Info.HomeTeam})
	add(team.Team{ID: record.Info.AwayTeamID, Name: record.Info.AwayTeam})
	for _, stat := range record.Players {
		add(team.Team{ID: stat.TeamID, Name: stat.TeamName})
	}
	return refs
}
