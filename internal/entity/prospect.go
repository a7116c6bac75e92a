package entity

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Pipeline statuses. A prospect starts at StatusNew and only moves forward.
const (
	StatusNew          = "new"
	StatusEnriched     = "enriched"
	StatusContacted    = "contacted"
	StatusReplied      = "replied"
	StatusQualified    = "qualified"
	StatusDisqualified = "disqualified"
)

var validStatuses = map[string]bool{
	StatusNew:          true,
	StatusEnriched:     true,
	StatusContacted:    true,
	StatusReplied:      true,
	StatusQualified:    true,
	StatusDisqualified: true,
}

func IsValidStatus(s string) bool { return validStatuses[s] }

// EnrichmentData records what the last enrichment call wrote. Fields is the
// union of every field enrichment ever set on this prospect, not just the
// last call's payload.
type EnrichmentData struct {
	Provider   string            `json:"provider"`
	EnrichedAt string            `json:"enrichedAt"`
	Fields     map[string]string `json:"fields"`
}

// Prospect is a contact record tracked through the outreach pipeline.
type Prospect struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanySize string `json:"companySize"`
	Industry    string `json:"industry"`
	LinkedinURL string `json:"linkedinUrl"`
	Location    string `json:"location"`

	ProfileID string `json:"profileId"`
	// FitScore is derived; only the scoring engine writes it.
	FitScore int    `json:"fitScore"`
	Status   string `json:"status"`

	Enrichment EnrichmentData `json:"enrichment"`
	Tags       []string       `json:"tags"`
	Notes      string         `json:"notes"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// NewProspect returns an empty prospect with identity and timestamps set.
func NewProspect() Prospect {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return Prospect{
		ID:         uuid.New().String(),
		Status:     StatusNew,
		Enrichment: EnrichmentData{Fields: map[string]string{}},
		Tags:       []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch stamps UpdatedAt. Every mutation path must call it.
func (p *Prospect) Touch() {
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
}

// Field returns the value of a contact field by its wire name. Unknown
// names return "". Used for sorting and for the enrichment merge.
func (p *Prospect) Field(name string) string {
	switch name {
	case "firstName":
		return p.FirstName
	case "lastName":
		return p.LastName
	case "email":
		return p.Email
	case "phone":
		return p.Phone
	case "title":
		return p.Title
	case "company":
		return p.Company
	case "companySize":
		return p.CompanySize
	case "industry":
		return p.Industry
	case "linkedinUrl":
		return p.LinkedinURL
	case "location":
		return p.Location
	case "status":
		return p.Status
	case "profileId":
		return p.ProfileID
	case "fitScore":
		return strconv.Itoa(p.FitScore)
	case "notes":
		return p.Notes
	case "createdAt":
		return p.CreatedAt
	case "updatedAt":
		return p.UpdatedAt
	}
	return ""
}

// SetField assigns a contact field by wire name and reports whether the name
// is one of the mergeable contact fields. Identity, status, and derived
// fields are deliberately not reachable from here.
func (p *Prospect) SetField(name, value string) bool {
	switch name {
	case "firstName":
		p.FirstName = value
	case "lastName":
		p.LastName = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "title":
		p.Title = value
	case "company":
		p.Company = value
	case "companySize":
		p.CompanySize = value
	case "industry":
		p.Industry = value
	case "linkedinUrl":
		p.LinkedinURL = value
	case "location":
		p.Location = value
	default:
		return false
	}
	return true
}

// HasIdentity reports whether the prospect carries at least one field that
// identifies a person. Rows without identity are rejected at import.
func (p *Prospect) HasIdentity() bool {
	return p.FirstName != "" || p.LastName != "" || p.Email != "" || p.Company != ""
}
