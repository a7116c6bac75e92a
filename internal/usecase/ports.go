package usecase

import (
	"context"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/infra/integration/apollo"
	"github.com/emika-hq/prospect-hub/internal/infra/queue"
	"github.com/emika-hq/prospect-hub/internal/infra/storage"
)

// ErrNoChange lets a Mutate transform skip the durable write.
var ErrNoChange = storage.ErrNoChange

type ProspectRepositoryInterface interface {
	All() ([]entity.Prospect, error)
	Mutate(fn func([]entity.Prospect) ([]entity.Prospect, error)) error
}

type ProfileRepositoryInterface interface {
	All() ([]entity.Profile, error)
	Mutate(fn func([]entity.Profile) ([]entity.Profile, error)) error
}

type CampaignRepositoryInterface interface {
	All() ([]entity.Campaign, error)
	Mutate(fn func([]entity.Campaign) ([]entity.Campaign, error)) error
}

type TemplateRepositoryInterface interface {
	All() ([]entity.Template, error)
	Mutate(fn func([]entity.Template) ([]entity.Template, error)) error
}

type ConfigRepositoryInterface interface {
	Get() (entity.Config, error)
	Mutate(fn func(entity.Config) (entity.Config, error)) error
}

// EnrichmentProvider is the opaque network collaborator. The API key is
// passed per call so config changes take effect without rewiring.
type EnrichmentProvider interface {
	Name() string
	Match(ctx context.Context, apiKey string, input apollo.MatchInput) (*apollo.MatchOutput, error)
	Search(ctx context.Context, apiKey string, input apollo.SearchInput) (*apollo.SearchOutput, error)
}

type EventPublisherInterface interface {
	PublishProspectEvent(ctx context.Context, payload queue.ProspectEventPayload) error
}
