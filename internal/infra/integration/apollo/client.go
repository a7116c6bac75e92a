package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.apollo.io/api/v1"

// Client talks to the Apollo people API. The API key is passed per call
// because credentials live in the settings document and may be rotated
// through the API at any time.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Name() string { return "apollo" }

// Match looks up one person and returns their contact fields keyed by
// prospect wire names.
func (c *Client) Match(ctx context.Context, apiKey string, input MatchInput) (*MatchOutput, error) {
	url := fmt.Sprintf("%s/people/match", c.baseURL)

	payload := matchRequest{
		ID:               input.PersonID,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		OrganizationName: input.Company,
		Domain:           input.Domain,
	}

	var response matchResponse
	if err := c.post(ctx, url, apiKey, payload, &response); err != nil {
		return nil, err
	}
	if response.Person == nil {
		return nil, fmt.Errorf("apollo: no match found")
	}

	p := response.Person
	return &MatchOutput{PersonID: p.ID, Fields: p.fields()}, nil
}

// Search runs a people search and maps results to prospect wire names.
func (c *Client) Search(ctx context.Context, apiKey string, input SearchInput) (*SearchOutput, error) {
	url := fmt.Sprintf("%s/mixed_people/search", c.baseURL)

	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = 25
	}
	payload := searchRequest{
		QKeywords:             input.Query,
		PersonTitles:          emptyIfNil(input.Titles),
		PersonLocations:       emptyIfNil(input.Locations),
		OrgNumEmployeesRanges: emptyIfNil(input.CompanySizes),
		Page:                  page,
		PerPage:               perPage,
	}

	var response searchResponse
	if err := c.post(ctx, url, apiKey, payload, &response); err != nil {
		return nil, err
	}

	out := &SearchOutput{People: make([]Person, 0, len(response.People))}
	if response.Pagination != nil {
		out.Total = response.Pagination.TotalEntries
	}
	for _, p := range response.People {
		out.People = append(out.People, Person{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Email:       p.Email,
			Title:       p.Title,
			Company:     p.orgName(),
			CompanySize: p.orgSize(),
			Industry:    p.orgIndustry(),
			LinkedinURL: p.LinkedinURL,
			Location:    p.location(),
		})
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, url, apiKey string, payload, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("apollo: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req, apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apollo: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("apollo: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apollo: decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, apiKey string) {
	req.Header.Set("X-Api-Key", apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ProspectHub/1.0")
}

// fields flattens a matched person to prospect wire field names. Headline
// and seniority have no contact field; they surface only in the enrichment
// fields map.
func (p *person) fields() map[string]string {
	fields := map[string]string{
		"email":       p.Email,
		"phone":       p.phone(),
		"title":       p.Title,
		"company":     p.orgName(),
		"companySize": p.orgSize(),
		"industry":    p.orgIndustry(),
		"linkedinUrl": p.LinkedinURL,
		"location":    p.location(),
		"headline":    p.Headline,
		"seniority":   p.Seniority,
	}
	for k, v := range fields {
		if v == "" {
			delete(fields, k)
		}
	}
	return fields
}

func (p *person) phone() string {
	if len(p.PhoneNumbers) == 0 {
		return ""
	}
	return p.PhoneNumbers[0].SanitizedNumber
}

func (p *person) orgName() string {
	if p.Organization == nil {
		return ""
	}
	return p.Organization.Name
}

func (p *person) orgSize() string {
	if p.Organization == nil || p.Organization.EstimatedNumEmployees == 0 {
		return ""
	}
	return strconv.Itoa(p.Organization.EstimatedNumEmployees)
}

func (p *person) orgIndustry() string {
	if p.Organization == nil {
		return ""
	}
	return p.Organization.Industry
}

func (p *person) location() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.City, p.State, p.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
