package matchevent

// Event is one athlete involvement in a key play (goal, card, shootout kick).
type Event struct {
	MatchID      string
	Sequence     int
	TeamID       string
	PlayerID     string
	PlayerName   string
	Type         string
	Minute       int
	IsGoal       bool
	IsYellowCard bool
	IsRedCard    bool
	IsPenalty    bool
	IsOwnGoal    bool
	IsShootout   bool
}
