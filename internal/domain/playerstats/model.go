package playerstats

import "github.com/riskibarqy/matchday-etl/internal/domain/statvalue"

// PlayerStat is one roster entry of one match.
type PlayerStat struct {
	MatchID      string
	PlayerID     string
	TeamID       string
	TeamName     string
	HomeAway     string
	FullName     string
	Jersey       string
	Starter      bool
	Active       bool
	SubbedIn     bool
	SubbedOut    bool
	Position     string
	PositionAbbr string
	Headshot     string
	Stats        map[string]any
}

// Line holds the named player_stats columns. The raw Stats map is stored alongside it.
type Line struct {
	Goals          int
	Assists        int
	Shots          int
	ShotsOnTarget  int
	FoulsCommitted int
	FoulsSuffered  int
	YellowCards    int
	RedCards       int
	Offsides       int
	OwnGoals       int
	Saves          int
	ShotsFaced     int
	GoalsConceded  int
	Appearances    int
	SubIns         int
}

func (s PlayerStat) Line() Line {
	get := func(name string) int {
		return statvalue.Int(s.Stats[name])
	}
	return Line{
		Goals:          get("totalGoals"),
		Assists:        get("goalAssists"),
		Shots:          get("totalShots"),
		ShotsOnTarget:  get("shotsOnTarget"),
		FoulsCommitted: get("foulsCommitted"),
		FoulsSuffered:  get("foulsSuffered"),
		YellowCards:    get("yellowCards"),
		RedCards:       get("redCards"),
		Offsides:       get("offsides"),
		OwnGoals:       get("ownGoals"),
		Saves:          get("saves"),
		ShotsFaced:     get("shotsFaced"),
		GoalsConceded:  get("goalsConceded"),
		Appearances:    get("appearances"),
		SubIns:         get("subIns"),
	}
}
