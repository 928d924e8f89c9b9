package models

import (
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Plan is a named financial scenario anchoring all projections
type Plan struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	StartDate  Date      `json:"start_date" yaml:"start_date"`
	RangeYears int       `json:"range_years" yaml:"range_years"`
}

func (p *Plan) UnmarshalYAML(value *yaml.Node) error {
	// yaml.v3 does not honor encoding.TextUnmarshaler, so the uuid comes in
	// as a string
	var raw struct {
		ID         string `yaml:"id"`
		Name       string `yaml:"name"`
		StartDate  Date   `yaml:"start_date"`
		RangeYears int    `yaml:"range_years"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	p.Name = raw.Name
	p.StartDate = raw.StartDate
	p.RangeYears = raw.RangeYears
	if raw.ID != "" {
		id, err := uuid.Parse(raw.ID)
		if err != nil {
			return err
		}
		p.ID = id
	}
	return nil
}
