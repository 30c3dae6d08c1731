package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// State is one entry of the map navigation data: a US state or territory with
// its FIPS code and bounding box.
type State struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	FIPSCode    int     `json:"fips_code"`
	IsTerritory bool    `json:"is_territory"`
	LatMin      float64 `json:"lat_min"`
	LatMax      float64 `json:"lat_max"`
	LongMin     float64 `json:"long_min"`
	LongMax     float64 `json:"long_max"`
}

// StdFIPSCode returns the two-digit zero-padded FIPS code ("6" becomes "06").
func (s *State) StdFIPSCode() string {
	return fmt.Sprintf("%02d", s.FIPSCode)
}

// Validate checks required fields and geographic bounds.
func (s *State) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Symbol, validation.Required, validation.Length(2, 2)),
		validation.Field(&s.FIPSCode, validation.Required, validation.Min(1), validation.Max(99)),
		validation.Field(&s.LatMin, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&s.LatMax, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&s.LongMin, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&s.LongMax, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// County is one county (or county equivalent) of a state.
type County struct {
	ID        string `json:"id,omitempty"`
	StateID   string `json:"state_id"`
	Name      string `json:"name"`
	FIPSCode  string `json:"fips_code"`
	FIPSClass string `json:"fips_class"`
}

// Validate checks required county fields.
func (c *County) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.StateID, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.FIPSCode, validation.Required),
	)
}
