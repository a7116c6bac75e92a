package apollo

// MatchInput identifies one person for a people-match lookup. PersonID is
// the provider's own identifier when a previous enrichment returned one;
// otherwise name, company, and email domain form the fallback key.
type MatchInput struct {
	PersonID  string
	FirstName string
	LastName  string
	Company   string
	Domain    string
}

// MatchOutput is the provider's answer, flattened to wire field names.
type MatchOutput struct {
	PersonID string
	Fields   map[string]string
}

// SearchInput drives a people search.
type SearchInput struct {
	Query        string
	Titles       []string
	Locations    []string
	CompanySizes []string
	Page         int
	PerPage      int
}

// Person is one people-search result row, already mapped to prospect wire
// field names so it can feed a bulk add directly.
type Person struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanySize string `json:"companySize"`
	Industry    string `json:"industry"`
	LinkedinURL string `json:"linkedinUrl"`
	Location    string `json:"location"`
}

// SearchOutput carries one page of results plus the provider's total count.
type SearchOutput struct {
	Total  int      `json:"total"`
	People []Person `json:"people"`
}

// --- wire types ---

type matchRequest struct {
	ID               string `json:"id,omitempty"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
	Domain           string `json:"domain,omitempty"`
}

type phoneNumber struct {
	SanitizedNumber string `json:"sanitized_number"`
}

type organization struct {
	Name                  string `json:"name"`
	EstimatedNumEmployees int    `json:"estimated_num_employees"`
	Industry              string `json:"industry"`
}

type person struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Email        string        `json:"email"`
	Title        string        `json:"title"`
	Headline     string        `json:"headline"`
	Seniority    string        `json:"seniority"`
	LinkedinURL  string        `json:"linkedin_url"`
	City         string        `json:"city"`
	State        string        `json:"state"`
	Country      string        `json:"country"`
	PhoneNumbers []phoneNumber `json:"phone_numbers"`
	Organization *organization `json:"organization"`
}

type matchResponse struct {
	Person *person `json:"person"`
}

type searchRequest struct {
	QKeywords             string   `json:"q_keywords"`
	PersonTitles          []string `json:"person_titles"`
	PersonLocations       []string `json:"person_locations"`
	OrgNumEmployeesRanges []string `json:"organization_num_employees_ranges"`
	Page                  int      `json:"page"`
	PerPage               int      `json:"per_page"`
}

type pagination struct {
	TotalEntries int `json:"total_entries"`
}

type searchResponse struct {
	People     []person    `json:"people"`
	Pagination *pagination `json:"pagination"`
}
