package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-etl/internal/domain/playerstats"
	qb "github.com/riskibarqy/matchday-etl/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, stat playerstats.PlayerStat) error {
	model, err := newPlayerStatInsertModel(stat)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("player_stats", model, `ON CONFLICT (match_id, player_id)
DO UPDATE SET
    team_id = EXCLUDED.team_id,
    team_name = EXCLUDED.team_name,
    full_name = EXCLUDED.full_name,
    home_away = EXCLUDED.home_away,
    jersey = EXCLUDED.jersey,
    starter = EXCLUDED.starter,
    active = EXCLUDED.active,
    subbed_in = EXCLUDED.subbed_in,
    subbed_out = EXCLUDED.subbed_out,
    position = EXCLUDED.position,
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    shots = EXCLUDED.shots,
    shots_on_target = EXCLUDED.shots_on_target,
    fouls_committed = EXCLUDED.fouls_committed,
    fouls_suffered = EXCLUDED.fouls_suffered,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    offsides = EXCLUDED.offsides,
    own_goals = EXCLUDED.own_goals,
    saves = EXCLUDED.saves,
    shots_faced = EXCLUDED.shots_faced,
    goals_conceded = EXCLUDED.goals_conceded,
    appearances = EXCLUDED.appearances,
    sub_ins = EXCLUDED.sub_ins,
    stats = EXCLUDED.stats,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert player stat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player stat match=%s player=%s: %w", stat.MatchID, stat.PlayerID, classify(err))
	}
	return nil
}

func newPlayerStatInsertModel(stat playerstats.PlayerStat) (playerStatInsertModel, error) {
	stats := stat.Stats
	if stats == nil {
		stats = map[string]any{}
	}
	encoded, err := sonic.MarshalString(stats)
	if err != nil {
		return playerStatInsertModel{}, fmt.Errorf("encode stats match=%s player=%s: %w", stat.MatchID, stat.PlayerID, err)
	}

	line := stat.Line()
	return playerStatInsertModel{
		MatchID:        stat.MatchID,
		PlayerID:       stat.PlayerID,
		TeamID:         stat.TeamID,
		TeamName:       stat.TeamName,
		FullName:       stat.FullName,
		HomeAway:       nullableString(stat.HomeAway),
		Jersey:         nullableString(stat.Jersey),
		Starter:        stat.Starter,
		Active:         stat.Active,
		SubbedIn:       stat.SubbedIn,
		SubbedOut:      stat.SubbedOut,
		Position:       nullableString(stat.PositionAbbr),
		Goals:          line.Goals,
		Assists:        line.Assists,
		Shots:          line.Shots,
		ShotsOnTarget:  line.ShotsOnTarget,
		FoulsCommitted: line.FoulsCommitted,
		FoulsSuffered:  line.FoulsSuffered,
		YellowCards:    line.YellowCards,
		RedCards:       line.RedCards,
		Offsides:       line.Offsides,
		OwnGoals:       line.OwnGoals,
		Saves:          line.Saves,
		ShotsFaced:     line.ShotsFaced,
		GoalsConceded:  line.GoalsConceded,
		Appearances:    line.Appearances,
		SubIns:         line.SubIns,
		Stats:          encoded,
	}, nil
}

type playerStatInsertModel struct {
	MatchID        string  `db:"match_id"`
	PlayerID       string  `db:"player_id"`
	TeamID         string  `db:"team_id"`
	TeamName       string  `db:"team_name"`
	FullName       string  `db:"full_name"`
	HomeAway       *string `db:"home_away"`
	Jersey         *string `db:"jersey"`
	Starter        bool    `db:"starter"`
	Active         bool    `db:"active"`
	SubbedIn       bool    `db:"subbed_in"`
	SubbedOut      bool    `db:"subbed_out"`
	Position       *string `db:"position"`
	Goals          int     `db:"goals"`
	Assists        int     `db:"assists"`
	Shots          int     `db:"shots"`
	ShotsOnTarget  int     `db:"shots_on_target"`
	FoulsCommitted int     `db:"fouls_committed"`
	FoulsSuffered  int     `db:"fouls_suffered"`
	YellowCards    int     `db:"yellow_cards"`
	RedCards       int     `db:"red_cards"`
	Offsides       int     `db:"offsides"`
	OwnGoals       int     `db:"own_goals"`
	Saves          int     `db:"saves"`
	ShotsFaced     int     `db:"shots_faced"`
	GoalsConceded  int     `db:"goals_conceded"`
	Appearances    int     `db:"appearances"`
	SubIns         int     `db:"sub_ins"`
	Stats          string  `db:"stats"`
}
