package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emika-hq/prospect-hub/internal/entity"
)

// ProspectInput carries the client-writable fields for creating a prospect.
// Everything else (id, fitScore, enrichment, timestamps) is server-owned.
type ProspectInput struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	CompanySize string   `json:"companySize"`
	Industry    string   `json:"industry"`
	LinkedinURL string   `json:"linkedinUrl"`
	Location    string   `json:"location"`
	ProfileID   string   `json:"profileId"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes"`
}

func (in *ProspectInput) apply(p *entity.Prospect) {
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.Email = in.Email
	p.Phone = in.Phone
	p.Title = in.Title
	p.Company = in.Company
	p.CompanySize = in.CompanySize
	p.Industry = in.Industry
	p.LinkedinURL = in.LinkedinURL
	p.Location = in.Location
	p.ProfileID = in.ProfileID
	if in.Status != "" {
		p.Status = in.Status
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	p.Notes = in.Notes
}

// ProspectPatch is a partial update. Nil means "leave unchanged"; the set of
// reachable fields is the explicit whitelist, so derived and identity fields
// cannot be patched from the outside.
type ProspectPatch struct {
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Title       *string   `json:"title"`
	Company     *string   `json:"company"`
	CompanySize *string   `json:"companySize"`
	Industry    *string   `json:"industry"`
	LinkedinURL *string   `json:"linkedinUrl"`
	Location    *string   `json:"location"`
	ProfileID   *string   `json:"profileId"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
	Notes       *string   `json:"notes"`
}

func (patch *ProspectPatch) apply(p *entity.Prospect) error {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FirstName, patch.FirstName)
	set(&p.LastName, patch.LastName)
	set(&p.Email, patch.Email)
	set(&p.Phone, patch.Phone)
	set(&p.Title, patch.Title)
	set(&p.Company, patch.Company)
	set(&p.CompanySize, patch.CompanySize)
	set(&p.Industry, patch.Industry)
	set(&p.LinkedinURL, patch.LinkedinURL)
	set(&p.Location, patch.Location)
	set(&p.ProfileID, patch.ProfileID)
	set(&p.Notes, patch.Notes)
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Status != nil {
		if !entity.IsValidStatus(*patch.Status) {
			return NewValidation(fmt.Sprintf("invalid status %q", *patch.Status))
		}
		p.Status = *patch.Status
	}
	return nil
}

// ListProspectsInput mirrors the records query string.
type ListProspectsInput struct {
	Status  string
	Profile string
	Search  string
	Sort    string
	Limit   int
	Offset  int
}

type ListProspectsOutput struct {
	Total   int               `json:"total"`
	Records []entity.Prospect `json:"records"`
}

// ProspectsUseCase covers the single-entity and listing operations over the
// prospect collection.
type ProspectsUseCase struct {
	Repo ProspectRepositoryInterface
}

func NewProspectsUseCase(repo ProspectRepositoryInterface) *ProspectsUseCase {
	return &ProspectsUseCase{Repo: repo}
}

// List filters, sorts, and pages the collection. Total counts matches
// before paging.
func (uc *ProspectsUseCase) List(in ListProspectsInput) (*ListProspectsOutput, error) {
	all, err := uc.Repo.All()
	if err != nil {
		return nil, err
	}

	filtered := make([]entity.Prospect, 0, len(all))
	search := strings.ToLower(in.Search)
	for _, p := range all {
		if in.Status != "" && p.Status != in.Status {
			continue
		}
		if in.Profile != "" && p.ProfileID != in.Profile {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(strings.Join([]string{
				p.FirstName, p.LastName, p.Email, p.Company, p.Title,
			}, " "))
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	if in.Sort != "" {
		field := in.Sort
		desc := strings.HasPrefix(field, "-")
		if desc {
			field = field[1:]
		}
		sort.SliceStable(filtered, func(i, j int) bool {
			a := strings.ToLower(filtered[i].Field(field))
			b := strings.ToLower(filtered[j].Field(field))
			if desc {
				return b < a
			}
			return a < b
		})
	}

	total := len(filtered)
	if in.Offset > 0 {
		if in.Offset >= len(filtered) {
			filtered = nil
		} else {
			filtered = filtered[in.Offset:]
		}
	}
	if in.Limit > 0 && in.Limit < len(filtered) {
		filtered = filtered[:in.Limit]
	}

	if filtered == nil {
		filtered = []entity.Prospect{}
	}
	return &ListProspectsOutput{Total: total, Records: filtered}, nil
}

// Create admits one prospect, enforcing the case-insensitive email
// uniqueness invariant at the admission boundary.
func (uc *ProspectsUseCase) Create(in ProspectInput) (*entity.Prospect, error) {
	if in.Status != "" && !entity.IsValidStatus(in.Status) {
		return nil, NewValidation(fmt.Sprintf("invalid status %q", in.Status))
	}

	p := entity.NewProspect()
	in.apply(&p)

	err := uc.Repo.Mutate(func(prospects []entity.Prospect) ([]entity.Prospect, error) {
		if in.Email != "" && !NewEmailSet(prospects).Admit(in.Email) {
			return nil, NewValidation(fmt.Sprintf("email %q already exists", in.Email))
		}
		return append(prospects, p), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update patches a prospect by id.
func (uc *ProspectsUseCase) Update(id string, patch ProspectPatch) (*entity.Prospect, error) {
	var updated entity.Prospect
	err := uc.Repo.Mutate(func(prospects []entity.Prospect) ([]entity.Prospect, error) {
		for i := range prospects {
			if prospects[i].ID != id {
				continue
			}
			if err := patch.apply(&prospects[i]); err != nil {
				return nil, err
			}
			prospects[i].Touch()
			updated = prospects[i]
			return prospects, nil
		}
		return nil, NewNotFound("prospect not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a prospect by id.
func (uc *ProspectsUseCase) Delete(id string) error {
	return uc.Repo.Mutate(func(prospects []entity.Prospect) ([]entity.Prospect, error) {
		for i := range prospects {
			if prospects[i].ID == id {
				return append(prospects[:i], prospects[i+1:]...), nil
			}
		}
		return nil, NewNotFound("prospect not found")
	})
}

// BulkDelete removes every listed id and reports how many were present.
func (uc *ProspectsUseCase) BulkDelete(ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, NewValidation("no ids")
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	deleted := 0
	err := uc.Repo.Mutate(func(prospects []entity.Prospect) ([]entity.Prospect, error) {
		kept := prospects[:0]
		for _, p := range prospects {
			if drop[p.ID] {
				deleted++
				continue
			}
			kept = append(kept, p)
		}
		if deleted == 0 {
			return nil, ErrNoChange
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
