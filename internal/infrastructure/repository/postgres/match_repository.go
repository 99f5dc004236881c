package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-etl/internal/domain/match"
	qb "github.com/riskibarqy/matchday-etl/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Upsert(ctx context.Context, info match.Info) error {
	query, args, err := qb.InsertModel("matches", matchInsertModel{
		ID:         info.MatchID,
		MatchDate:  nullableTime(info.Date),
		HomeTeam:   info.HomeTeam,
		AwayTeam:   info.AwayTeam,
		HomeTeamID: info.HomeTeamID,
		AwayTeamID: info.AwayTeamID,
		HomeScore:  info.HomeScore,
		AwayScore:  info.AwayScore,
		Status:     info.Status,
		Venue:      nullableString(info.Venue),
	}, `ON CONFLICT (id)
DO UPDATE SET
    match_date = EXCLUDED.match_date,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    status = EXCLUDED.status,
    venue = EXCLUDED.venue,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match id=%s: %w", info.MatchID, classify(err))
	}
	return nil
}

type matchInsertModel struct {
	ID         string     `db:"id"`
	MatchDate  *time.Time `db:"match_date"`
	HomeTeam   string     `db:"home_team"`
	AwayTeam   string     `db:"away_team"`
	HomeTeamID string     `db:"home_team_id"`
	AwayTeamID string     `db:"away_team_id"`
	HomeScore  *int       `db:"home_score"`
	AwayScore  *int       `db:"away_score"`
	Status     string     `db:"status"`
	Venue      *string    `db:"venue"`
}
