package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

// Step is one message in a campaign sequence. Subject and Body may carry
// merge placeholders resolved by a future sender.
type Step struct {
	Order     int    `json:"order"`
	DelayDays int    `json:"delayDays"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// CampaignStats are aggregate sender counters. This service never writes
// them; they are reserved for the sending pipeline.
type CampaignStats struct {
	Sent    int `json:"sent"`
	Opened  int `json:"opened"`
	Replied int `json:"replied"`
	Bounced int `json:"bounced"`
}

// Campaign is an ordered outreach sequence with an assigned set of prospects.
// RecordIDs has set semantics: a prospect is assigned at most once.
type Campaign struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	ProfileID string        `json:"profileId"`
	Status    string        `json:"status"`
	Steps     []Step        `json:"steps"`
	RecordIDs []string      `json:"recordIds"`
	Stats     CampaignStats `json:"stats"`
	CreatedAt string        `json:"createdAt"`
}

func NewCampaign(name string) (*Campaign, error) {
	c := &Campaign{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    CampaignDraft,
		Steps:     []Step{},
		RecordIDs: []string{},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Campaign) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	switch c.Status {
	case CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted:
		return nil
	}
	return errors.New("invalid campaign status")
}

// AddRecords unions ids into RecordIDs and returns how many were actually
// new. Adding an already-assigned prospect is a no-op.
func (c *Campaign) AddRecords(ids []string) int {
	existing := make(map[string]bool, len(c.RecordIDs))
	for _, id := range c.RecordIDs {
		existing[id] = true
	}
	added := 0
	for _, id := range ids {
		if id == "" || existing[id] {
			continue
		}
		existing[id] = true
		c.RecordIDs = append(c.RecordIDs, id)
		added++
	}
	return added
}
