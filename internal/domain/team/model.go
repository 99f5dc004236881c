package team

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Team is the reference row for a club; the latest seen display fields win.
type Team struct {
	ID           string `validate:"required"`
	Name         string
	Abbreviation string
	Logo         string
}

func (t Team) Validate() error {
	return validate.Struct(t)
}
