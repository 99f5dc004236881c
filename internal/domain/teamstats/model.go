package teamstats

import "github.com/riskibarqy/matchday-etl/internal/domain/statvalue"

// TeamStat is one team's boxscore for one match. Stats keeps the provider names as-is.
type TeamStat struct {
	MatchID      string
	TeamID       string
	TeamName     string
	Abbreviation string
	Logo         string
	HomeAway     string
	Stats        map[string]any
}

// Line is the typed projection of TeamStat.Stats stored in named team_stats columns.
type Line struct {
	Fouls               int
	YellowCards         int
	RedCards            int
	Offsides            int
	Corners             int
	Saves               int
	PossessionPct       float64
	Shots               int
	ShotsOnTarget       int
	ShotPct             float64
	PenaltyGoals        int
	PenaltyShots        int
	Passes              int
	AccuratePasses      int
	PassPct             float64
	Crosses             int
	AccurateCrosses     int
	CrossPct            float64
	LongBalls           int
	AccurateLongBalls   int
	LongBallPct         float64
	BlockedShots        int
	Tackles             int
	EffectiveTackles    int
	TacklePct           float64
	Interceptions       int
	Clearances          int
	EffectiveClearances int
}

var intFields = map[string]func(*Line, int){
	"foulsCommitted":     func(l *Line, v int) { l.Fouls = v },
	"yellowCards":        func(l *Line, v int) { l.YellowCards = v },
	"redCards":           func(l *Line, v int) { l.RedCards = v },
	"offsides":           func(l *Line, v int) { l.Offsides = v },
	"wonCorners":         func(l *Line, v int) { l.Corners = v },
	"saves":              func(l *Line, v int) { l.Saves = v },
	"totalShots":         func(l *Line, v int) { l.Shots = v },
	"shotsOnTarget":      func(l *Line, v int) { l.ShotsOnTarget = v },
	"penaltyKickGoals":   func(l *Line, v int) { l.PenaltyGoals = v },
	"penaltyKickShots":   func(l *Line, v int) { l.PenaltyShots = v },
	"totalPasses":        func(l *Line, v int) { l.Passes = v },
	"accuratePasses":     func(l *Line, v int) { l.AccuratePasses = v },
	"totalCrosses":       func(l *Line, v int) { l.Crosses = v },
	"accurateCrosses":    func(l *Line, v int) { l.AccurateCrosses = v },
	"totalLongBalls":     func(l *Line, v int) { l.LongBalls = v },
	"accurateLongBalls":  func(l *Line, v int) { l.AccurateLongBalls = v },
	"blockedShots":       func(l *Line, v int) { l.BlockedShots = v },
	"totalTackles":       func(l *Line, v int) { l.Tackles = v },
	"effectiveTackles":   func(l *Line, v int) { l.EffectiveTackles = v },
	"interceptions":      func(l *Line, v int) { l.Interceptions = v },
	"totalClearance":     func(l *Line, v int) { l.Clearances = v },
	"effectiveClearance": func(l *Line, v int) { l.EffectiveClearances = v },
}

var pctFields = map[string]func(*Line, float64){
	"possessionPct": func(l *Line, v float64) { l.PossessionPct = v },
	"shotPct":       func(l *Line, v float64) { l.ShotPct = v },
	"passPct":       func(l *Line, v float64) { l.PassPct = v },
	"crossPct":      func(l *Line, v float64) { l.CrossPct = v },
	"longballPct":   func(l *Line, v float64) { l.LongBallPct = v },
	"tacklePct":     func(l *Line, v float64) { l.TacklePct = v },
}

// Split coerces every recognised stat into Line and returns the remaining stats untouched.
// Missing stats stay zero.
func (s TeamStat) Split() (Line, map[string]any) {
	var line Line
	extra := make(map[string]any)
	for name, value := range s.Stats {
		if set, ok := intFields[name]; ok {
			set(&line, statvalue.Int(value))
			continue
		}
		if set, ok := pctFields[name]; ok {
			set(&line, statvalue.Float(value))
			continue
		}
		extra[name] = value
	}
	return line, extra
}
