package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Criteria are the match lists of an ideal-customer profile. Each list is
// independent and optional. FundingStages and TechStack are captured for
// display but are not consulted by the scoring engine.
type Criteria struct {
	Industries    []string `json:"industries"`
	CompanySizes  []string `json:"companySizes"`
	Titles        []string `json:"titles"`
	Locations     []string `json:"locations"`
	FundingStages []string `json:"fundingStages"`
	TechStack     []string `json:"techStack"`
}

// Profile is a named set of ideal-customer criteria. Prospects reference a
// profile by ID and get a fit score computed against its criteria.
type Profile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Criteria    Criteria `json:"criteria"`
	Color       string   `json:"color"`
	CreatedAt   string   `json:"createdAt"`
}

func NewProfile(name, description string) (*Profile, error) {
	p := &Profile{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Color:       "#ff6b35",
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
