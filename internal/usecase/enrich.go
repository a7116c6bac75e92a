package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/infra/integration/apollo"
	"github.com/emika-hq/prospect-hub/internal/infra/queue"
)

// mergeableFields is the whitelist of contact fields enrichment may write.
// Identity, status, and derived fields are not in it, so a provider payload
// can never clobber them.
var mergeableFields = []string{
	"email", "phone", "title", "company", "companySize",
	"industry", "linkedinUrl", "location",
}

// maskedValue matches redacted placeholders like "Ri***y" or "j••••@x.com":
// a run of two or more masking characters embedded in the string.
var maskedValue = regexp.MustCompile(`[•*]{2,}`)

// IsMaskedValue reports whether a stored value is a redaction placeholder
// rather than genuine data. Masked values may be overwritten by enrichment.
func IsMaskedValue(v string) bool {
	return maskedValue.MatchString(v)
}

// EnrichOutcome is the per-identifier result of a batch enrichment. Exactly
// one of Fields or Error is populated.
type EnrichOutcome struct {
	ID       string            `json:"id"`
	Provider string            `json:"provider,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// EnrichProspectsUseCase fetches provider data for a batch of prospects and
// merges it under the never-clobber policy. Identifiers are processed one at
// a time; one failure never aborts the batch.
type EnrichProspectsUseCase struct {
	Prospects ProspectRepositoryInterface
	Config    ConfigRepositoryInterface
	Providers map[string]EnrichmentProvider
	Publisher EventPublisherInterface
}

func NewEnrichProspectsUseCase(
	prospects ProspectRepositoryInterface,
	config ConfigRepositoryInterface,
	providers map[string]EnrichmentProvider,
	publisher EventPublisherInterface,
) *EnrichProspectsUseCase {
	return &EnrichProspectsUseCase{
		Prospects: prospects,
		Config:    config,
		Providers: providers,
		Publisher: publisher,
	}
}

// Execute enriches recordIDs sequentially and persists the whole batch in a
// single collection mutation. With no configured provider credential it
// fails before touching any record. Provider calls run against a snapshot so
// the collection is never locked while a network call is in flight; the
// final merge re-checks every id against fresh state.
func (uc *EnrichProspectsUseCase) Execute(ctx context.Context, recordIDs []string) ([]EnrichOutcome, error) {
	if len(recordIDs) == 0 {
		return nil, NewValidation("no record ids")
	}

	cfg, err := uc.Config.Get()
	if err != nil {
		return nil, err
	}
	provider, apiKey := uc.activeProvider(cfg)
	if provider == nil {
		return nil, NewProviderFailure("no enrichment provider configured")
	}

	snapshot, err := uc.Prospects.All()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Prospect, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}

	outcomes := make([]EnrichOutcome, 0, len(recordIDs))
	matches := make(map[string]*apollo.MatchOutput, len(recordIDs))
	for _, id := range recordIDs {
		p, ok := byID[id]
		if !ok {
			outcomes = append(outcomes, EnrichOutcome{ID: id, Error: "Not found"})
			continue
		}

		match, err := provider.Match(ctx, apiKey, matchInput(&p))
		if err != nil {
			outcomes = append(outcomes, EnrichOutcome{ID: id, Error: err.Error()})
			continue
		}

		matches[id] = match
		outcomes = append(outcomes, EnrichOutcome{
			ID:       id,
			Provider: provider.Name(),
			Fields:   match.Fields,
		})
	}

	err = uc.Prospects.Mutate(func(prospects []entity.Prospect) ([]entity.Prospect, error) {
		index := make(map[string]int, len(prospects))
		for i, p := range prospects {
			index[p.ID] = i
		}

		enrichedAny := false
		for oi := range outcomes {
			match, ok := matches[outcomes[oi].ID]
			if !ok {
				continue
			}
			i, ok := index[outcomes[oi].ID]
			if !ok {
				// Deleted while the provider call was in flight.
				outcomes[oi] = EnrichOutcome{ID: outcomes[oi].ID, Error: "Not found"}
				continue
			}
			mergeEnrichment(&prospects[i], provider.Name(), match)
			enrichedAny = true
		}

		if !enrichedAny {
			return nil, ErrNoChange
		}
		return prospects, nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishEvents(ctx, outcomes)
	return outcomes, nil
}

// activeProvider walks the waterfall order and returns the first provider
// that is both registered and holds a credential.
func (uc *EnrichProspectsUseCase) activeProvider(cfg entity.Config) (EnrichmentProvider, string) {
	for _, name := range cfg.WaterfallOrder {
		key := cfg.APIKeys[name]
		if key == "" {
			continue
		}
		if p, ok := uc.Providers[name]; ok {
			return p, key
		}
	}
	return nil, ""
}

func matchInput(p *entity.Prospect) apollo.MatchInput {
	in := apollo.MatchInput{
		PersonID:  p.Enrichment.Fields["personId"],
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Company:   p.Company,
	}
	if at := strings.LastIndex(p.Email, "@"); at >= 0 {
		in.Domain = p.Email[at+1:]
	}
	return in
}

// mergeEnrichment applies the overwrite policy: a whitelisted field is
// written only when its current value is empty or masked. The enrichment
// stamp accumulates the union of fields ever written, and a new status
// advances to enriched; any later status stays put.
func mergeEnrichment(p *entity.Prospect, providerName string, match *apollo.MatchOutput) {
	for _, field := range mergeableFields {
		v := match.Fields[field]
		if v == "" {
			continue
		}
		cur := p.Field(field)
		if cur == "" || IsMaskedValue(cur) {
			p.SetField(field, v)
		}
	}

	if p.Enrichment.Fields == nil {
		p.Enrichment.Fields = map[string]string{}
	}
	for k, v := range match.Fields {
		p.Enrichment.Fields[k] = v
	}
	if match.PersonID != "" {
		p.Enrichment.Fields["personId"] = match.PersonID
	}
	p.Enrichment.Provider = providerName
	p.Enrichment.EnrichedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if p.Status == entity.StatusNew {
		p.Status = entity.StatusEnriched
	}
	p.Touch()
}

func (uc *EnrichProspectsUseCase) publishEvents(ctx context.Context, outcomes []EnrichOutcome) {
	if uc.Publisher == nil {
		return
	}
	for _, o := range outcomes {
		if o.Error != "" {
			continue
		}
		payload := queue.ProspectEventPayload{
			Event:      queue.EventProspectEnriched,
			ProspectID: o.ID,
			Provider:   o.Provider,
		}
		if err := uc.Publisher.PublishProspectEvent(ctx, payload); err != nil {
			log.Printf("enrich: publish event for %s: %v", o.ID, err)
		}
	}
}
