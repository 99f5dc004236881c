package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-etl/internal/domain/matchevent"
	qb "github.com/riskibarqy/matchday-etl/internal/platform/querybuilder"
)

type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

// ReplaceByMatch swaps the event rows of one match inside a single transaction.
func (r *MatchEventRepository) ReplaceByMatch(ctx context.Context, matchID string, items []matchevent.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace match events: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("match_events").Where(qb.Eq("match_id", matchID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match events match=%s: %w", matchID, classify(err))
	}

	if len(items) > 0 {
		rows := make([]matchEventInsertModel, 0, len(items))
		for _, item := range items {
			rows = append(rows, matchEventInsertModel{
				MatchID:      matchID,
				Sequence:     item.Sequence,
				TeamID:       nullableString(item.TeamID),
				PlayerID:     nullableString(item.PlayerID),
				PlayerName:   nullableString(item.PlayerName),
				EventType:    item.Type,
				Minute:       item.Minute,
				IsGoal:       item.IsGoal,
				IsYellowCard: item.IsYellowCard,
				IsRedCard:    item.IsRedCard,
				IsPenalty:    item.IsPenalty,
				IsOwnGoal:    item.IsOwnGoal,
				IsShootout:   item.IsShootout,
			})
		}
		query, args, err := qb.InsertModels("match_events", rows, "")
		if err != nil {
			return fmt.Errorf("build insert match events query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match events match=%s: %w", matchID, classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace match events tx: %w", err)
	}
	return nil
}

type matchEventInsertModel struct {
	MatchID      string  `db:"match_id"`
	Sequence     int     `db:"sequence"`
	TeamID       *string `db:"team_id"`
	PlayerID     *string `db:"player_id"`
	PlayerName   *string `db:"player_name"`
	EventType    string  `db:"event_type"`
	Minute       int     `db:"minute"`
	IsGoal       bool    `db:"is_goal"`
	IsYellowCard bool    `db:"is_yellow_card"`
	IsRedCard    bool    `db:"is_red_card"`
	IsPenalty    bool    `db:"is_penalty"`
	IsOwnGoal    bool    `db:"is_own_goal"`
	IsShootout   bool    `db:"is_shootout"`
}
