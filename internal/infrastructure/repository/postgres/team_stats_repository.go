package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/matchday-etl/internal/domain/teamstats"
	qb "github.com/riskibarqy/matchday-etl/internal/platform/querybuilder"
)

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) Upsert(ctx context.Context, stat teamstats.TeamStat) error {
	model, err := newTeamStatInsertModel(stat)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("team_stats", model, `ON CONFLICT (match_id, team_id)
DO UPDATE SET
    team_name = EXCLUDED.team_name,
    abbreviation = EXCLUDED.abbreviation,
    home_away = EXCLUDED.home_away,
    fouls = EXCLUDED.fouls,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    offsides = EXCLUDED.offsides,
    corners = EXCLUDED.corners,
    saves = EXCLUDED.saves,
    possession_pct = EXCLUDED.possession_pct,
    shots = EXCLUDED.shots,
    shots_on_target = EXCLUDED.shots_on_target,
    shot_pct = EXCLUDED.shot_pct,
    pk_goals = EXCLUDED.pk_goals,
    pk_shots = EXCLUDED.pk_shots,
    passes = EXCLUDED.passes,
    accurate_passes = EXCLUDED.accurate_passes,
    pass_pct = EXCLUDED.pass_pct,
    crosses = EXCLUDED.crosses,
    accurate_crosses = EXCLUDED.accurate_crosses,
    cross_pct = EXCLUDED.cross_pct,
    long_balls = EXCLUDED.long_balls,
    accurate_long_balls = EXCLUDED.accurate_long_balls,
    long_ball_pct = EXCLUDED.long_ball_pct,
    blocked_shots = EXCLUDED.blocked_shots,
    tackles = EXCLUDED.tackles,
    effective_tackles = EXCLUDED.effective_tackles,
    tackle_pct = EXCLUDED.tackle_pct,
    interceptions = EXCLUDED.interceptions,
    clearances = EXCLUDED.clearances,
    effective_clearances = EXCLUDED.effective_clearances,
    extra_stats = EXCLUDED.extra_stats,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert team stat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team stat match=%s team=%s: %w", stat.MatchID, stat.TeamID, classify(err))
	}
	return nil
}

func newTeamStatInsertModel(stat teamstats.TeamStat) (teamStatInsertModel, error) {
	line, extra := stat.Split()
	if extra == nil {
		extra = map[string]any{}
	}
	extraJSON, err := jsoniter.MarshalToString(extra)
	if err != nil {
		return teamStatInsertModel{}, fmt.Errorf("encode extra stats match=%s team=%s: %w", stat.MatchID, stat.TeamID, err)
	}

	return teamStatInsertModel{
		MatchID:             stat.MatchID,
		TeamID:              stat.TeamID,
		TeamName:            stat.TeamName,
		Abbreviation:        nullableString(stat.Abbreviation),
		HomeAway:            nullableString(stat.HomeAway),
		Fouls:               line.Fouls,
		YellowCards:         line.YellowCards,
		RedCards:            line.RedCards,
		Offsides:            line.Offsides,
		Corners:             line.Corners,
		Saves:               line.Saves,
		PossessionPct:       line.PossessionPct,
		Shots:               line.Shots,
		ShotsOnTarget:       line.ShotsOnTarget,
		ShotPct:             line.ShotPct,
		PKGoals:             line.PenaltyGoals,
		PKShots:             line.PenaltyShots,
		Passes:              line.Passes,
		AccuratePasses:      line.AccuratePasses,
		PassPct:             line.PassPct,
		Crosses:             line.Crosses,
		AccurateCrosses:     line.AccurateCrosses,
		CrossPct:            line.CrossPct,
		LongBalls:           line.LongBalls,
		AccurateLongBalls:   line.AccurateLongBalls,
		LongBallPct:         line.LongBallPct,
		BlockedShots:        line.BlockedShots,
		Tackles:             line.Tackles,
		EffectiveTackles:    line.EffectiveTackles,
		TacklePct:           line.TacklePct,
		Interceptions:       line.Interceptions,
		Clearances:          line.Clearances,
		EffectiveClearances: line.EffectiveClearances,
		ExtraStats:          extraJSON,
	}, nil
}

type teamStatInsertModel struct {
	MatchID             string  `db:"match_id"`
	TeamID              string  `db:"team_id"`
	TeamName            string  `db:"team_name"`
	Abbreviation        *string `db:"abbreviation"`
	HomeAway            *string `db:"home_away"`
	Fouls               int     `db:"fouls"`
	YellowCards         int     `db:"yellow_cards"`
	RedCards            int     `db:"red_cards"`
	Offsides            int     `db:"offsides"`
	Corners             int     `db:"corners"`
	Saves               int     `db:"saves"`
	PossessionPct       float64 `db:"possession_pct"`
	Shots               int     `db:"shots"`
	ShotsOnTarget       int     `db:"shots_on_target"`
	ShotPct             float64 `db:"shot_pct"`
	PKGoals             int     `db:"pk_goals"`
	PKShots             int     `db:"pk_shots"`
	Passes              int     `db:"passes"`
	AccuratePasses      int     `db:"accurate_passes"`
	PassPct             float64 `db:"pass_pct"`
	Crosses             int     `db:"crosses"`
	AccurateCrosses     int     `db:"accurate_crosses"`
	CrossPct            float64 `db:"cross_pct"`
	LongBalls           int     `db:"long_balls"`
	AccurateLongBalls   int     `db:"accurate_long_balls"`
	LongBallPct         float64 `db:"long_ball_pct"`
	BlockedShots        int     `db:"blocked_shots"`
	Tackles             int     `db:"tackles"`
	EffectiveTackles    int     `db:"effective_tackles"`
	TacklePct           float64 `db:"tackle_pct"`
	Interceptions       int     `db:"interceptions"`
	Clearances          int     `db:"clearances"`
	EffectiveClearances int     `db:"effective_clearances"`
	ExtraStats          string  `db:"extra_stats"`
}
