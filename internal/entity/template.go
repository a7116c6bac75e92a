package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Template categories. Fixed enumeration; the UI groups templates by these.
var TemplateCategories = []string{"cold-intro", "follow-up", "breakup", "meeting-request", "custom"}

// Template is a reusable message with merge placeholders.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	MergeFields []string `json:"mergeFields"`
	CreatedAt   string   `json:"createdAt"`
}

func NewTemplate(name, category string) (*Template, error) {
	if category == "" {
		category = "cold-intro"
	}
	t := &Template{
		ID:          uuid.New().String(),
		Name:        name,
		Category:    category,
		MergeFields: []string{},
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Template) Validate() error {
	if t.Name == "" {
		return errors.New("name is required")
	}
	for _, c := range TemplateCategories {
		if t.Category == c {
			return nil
		}
	}
	return errors.New("invalid template category")
}
