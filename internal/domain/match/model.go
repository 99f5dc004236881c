package match

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
)

var validate = validator.New()

// Info is the per-match metadata derived from the latest summary snapshot.
type Info struct {
	MatchID    string `validate:"required"`
	Date       time.Time
	HomeTeam   string
	AwayTeam   string
	HomeTeamID string `validate:"required"`
	AwayTeamID string `validate:"required,nefield=HomeTeamID"`
	HomeScore  *int
	AwayScore  *int
	Status     string
	Venue      string
}

func (i Info) Validate() error {
	return validate.Struct(i)
}

// NormalizeStatus maps provider status names (STATUS_FULL_TIME, STATUS_SCHEDULED, ...) onto
// the small set stored in the matches table.
func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	status = strings.TrimPrefix(status, "STATUS_")
	switch status {
	case "":
		return StatusScheduled
	case "FULL_TIME", "FINAL", "FINAL_AET", "FINAL_PEN", "FT", "AET", "PEN", "END_OF_REGULATION":
		return StatusFinished
	case "IN_PROGRESS", "FIRST_HALF", "SECOND_HALF", "HALFTIME", "OVERTIME", "SHOOTOUT":
		return StatusLive
	case "POSTPONED", "CANCELED", "CANCELLED", "ABANDONED", "DELAYED":
		return StatusPostponed
	case "SCHEDULED", "PRE":
		return StatusScheduled
	default:
		return status
	}
}
