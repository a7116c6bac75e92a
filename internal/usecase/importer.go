package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strings"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/infra/queue"
)

// autoMap resolves common CSV header names (case-folded) to prospect wire
// fields when the client supplies no explicit mapping.
var autoMap = map[string]string{
	"first_name": "firstName", "firstname": "firstName", "first name": "firstName",
	"last_name": "lastName", "lastname": "lastName", "last name": "lastName",
	"email": "email", "email_address": "email",
	"phone": "phone", "phone_number": "phone",
	"title": "title", "job_title": "title", "job title": "title",
	"company": "company", "organization": "company", "company_name": "company",
	"company_size": "companySize", "employees": "companySize",
	"industry": "industry",
	"linkedin": "linkedinUrl", "linkedin_url": "linkedinUrl",
	"location": "location", "city": "location",
}

// ImportResult is the batch outcome: admitted rows, rows skipped as email
// duplicates, and the admitted prospects themselves.
type ImportResult struct {
	Imported   int               `json:"imported"`
	Duplicates int               `json:"duplicates"`
	Records    []entity.Prospect `json:"records"`
}

// ImportProspectsUseCase turns CSV rows into prospects: map columns to
// fields, drop rows with no identity, dedup by email against the store and
// within the batch.
type ImportProspectsUseCase struct {
	Prospects ProspectRepositoryInterface
	Publisher EventPublisherInterface
}

func NewImportProspectsUseCase(prospects ProspectRepositoryInterface, publisher EventPublisherInterface) *ImportProspectsUseCase {
	return &ImportProspectsUseCase{Prospects: prospects, Publisher: publisher}
}

// Execute parses csvData (header row required) and admits rows. mapping is
// an optional csvColumn→field table; when nil the fixed auto-map is used.
func (uc *ImportProspectsUseCase) Execute(ctx context.Context, csvData []byte, mapping map[string]string) (*ImportResult, error) {
	rows, err := parseCSV(csvData)
	if err != nil {
		return nil, NewValidation(fmt.Sprintf("invalid csv: %v", err))
	}

	candidates := make([]entity.Prospect, 0, len(rows))
	for _, row := range rows {
		p := entity.NewProspect()
		mapRow(&p, row, mapping)
		if p.HasIdentity() {
			candidates = append(candidates, p)
		}
	}

	result, err := uc.admit(candidates)
	if err != nil {
		return nil, err
	}
	uc.publishImported(ctx, result.Imported)
	return result, nil
}

// BulkAdd admits pre-fetched records (typically people-search results) under
// the same dedup rule as a CSV import.
func (uc *ImportProspectsUseCase) BulkAdd(ctx context.Context, inputs []ProspectInput) (*ImportResult, error) {
	if len(inputs) == 0 {
		return nil, NewValidation("no records")
	}

	candidates := make([]entity.Prospect, 0, len(inputs))
	for _, in := range inputs {
		p := entity.NewProspect()
		in.apply(&p)
		if !entity.IsValidStatus(p.Status) {
			p.Status = entity.StatusNew
		}
		if p.HasIdentity() {
			candidates = append(candidates, p)
		}
	}

	result, err := uc.admit(candidates)
	if err != nil {
		return nil, err
	}
	uc.publishImported(ctx, result.Imported)
	return result, nil
}

// admit runs the dedup engine over candidates inside one collection
// mutation, so concurrent imports cannot admit the same email twice.
func (uc *ImportProspectsUseCase) admit(candidates []entity.Prospect) (*ImportResult, error) {
	result := &ImportResult{Records: []entity.Prospect{}}
	err := uc.Prospects.Mutate(func(prospects []entity.Prospect) ([]entity.Prospect, error) {
		set := NewEmailSet(prospects)
		for _, c := range candidates {
			if !set.Admit(c.Email) {
				result.Duplicates++
				continue
			}
			prospects = append(prospects, c)
			result.Records = append(result.Records, c)
			result.Imported++
		}
		if result.Imported == 0 {
			return nil, ErrNoChange
		}
		return prospects, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func parseCSV(data []byte) ([]map[string]string, error) {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		empty := true
		for i, h := range headers {
			if i >= len(rec) {
				break
			}
			v := strings.TrimSpace(rec[i])
			row[strings.TrimSpace(h)] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func mapRow(p *entity.Prospect, row map[string]string, mapping map[string]string) {
	if mapping != nil {
		for csvCol, field := range mapping {
			if field == "" {
				continue
			}
			if v, ok := row[csvCol]; ok {
				p.SetField(field, v)
			}
		}
		return
	}
	for csvCol, v := range row {
		if field, ok := autoMap[strings.ToLower(csvCol)]; ok {
			p.SetField(field, v)
		}
	}
}

func (uc *ImportProspectsUseCase) publishImported(ctx context.Context, count int) {
	if uc.Publisher == nil || count == 0 {
		return
	}
	payload := queue.ProspectEventPayload{
		Event: queue.EventProspectsImported,
		Count: count,
	}
	if err := uc.Publisher.PublishProspectEvent(ctx, payload); err != nil {
		log.Printf("import: publish event: %v", err)
	}
}
