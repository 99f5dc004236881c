package player

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Player is the reference row for an athlete as last seen in a roster.
type Player struct {
	ID           string `validate:"required"`
	FullName     string
	TeamID       string
	Position     string
	PositionAbbr string
	Jersey       string
	Headshot     string
}

func (p Player) Validate() error {
	return validate.Struct(p)
}
