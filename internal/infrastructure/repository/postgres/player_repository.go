package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-etl/internal/domain/player"
	qb "github.com/riskibarqy/matchday-etl/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		PlayerID:     item.ID,
		FullName:     item.FullName,
		TeamID:       nullableString(item.TeamID),
		Position:     nullableString(item.Position),
		PositionAbbr: nullableString(item.PositionAbbr),
		Jersey:       nullableString(item.Jersey),
		Headshot:     nullableString(item.Headshot),
	}, `ON CONFLICT (player_id)
DO UPDATE SET
    full_name = COALESCE(NULLIF(EXCLUDED.full_name, ''), players.full_name),
    team_id = COALESCE(EXCLUDED.team_id, players.team_id),
    position = COALESCE(EXCLUDED.position, players.position),
    position_abbr = COALESCE(EXCLUDED.position_abbr, players.position_abbr),
    jersey = COALESCE(EXCLUDED.jersey, players.jersey),
    headshot = COALESCE(EXCLUDED.headshot, players.headshot),
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player id=%s: %w", item.ID, classify(err))
	}
	return nil
}

type playerInsertModel struct {
	PlayerID     string  `db:"player_id"`
	FullName     string  `db:"full_name"`
	TeamID       *string `db:"team_id"`
	Position     *string `db:"position"`
	PositionAbbr *string `db:"position_abbr"`
	Jersey       *string `db:"jersey"`
	Headshot     *string `db:"headshot"`
}
