package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-etl/internal/domain/team"
	qb "github.com/riskibarqy/matchday-etl/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Upsert keeps the latest non-empty display fields seen for a team.
func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	query, args, err := qb.InsertModel("teams", teamInsertModel{
		TeamID:       item.ID,
		Name:         item.Name,
		Abbreviation: nullableString(item.Abbreviation),
		Logo:         nullableString(item.Logo),
	}, `ON CONFLICT (team_id)
DO UPDATE SET
    name = COALESCE(NULLIF(EXCLUDED.name, ''), teams.name),
    abbreviation = COALESCE(EXCLUDED.abbreviation, teams.abbreviation),
    logo = COALESCE(EXCLUDED.logo, teams.logo),
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team id=%s: %w", item.ID, classify(err))
	}
	return nil
}

type teamInsertModel struct {
	TeamID       string  `db:"team_id"`
	Name         string  `db:"name"`
	Abbreviation *string `db:"abbreviation"`
	Logo         *string `db:"logo"`
}
