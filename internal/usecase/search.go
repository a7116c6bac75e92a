package usecase

import (
	"context"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/infra/integration/apollo"
)

// SearchPeopleUseCase proxies a people search to the provider. Results are
// returned to the client for review and come back through BulkAdd.
type SearchPeopleUseCase struct {
	Config    ConfigRepositoryInterface
	Providers map[string]EnrichmentProvider
}

func NewSearchPeopleUseCase(config ConfigRepositoryInterface, providers map[string]EnrichmentProvider) *SearchPeopleUseCase {
	return &SearchPeopleUseCase{Config: config, Providers: providers}
}

func (uc *SearchPeopleUseCase) Execute(ctx context.Context, input apollo.SearchInput) (*apollo.SearchOutput, error) {
	cfg, err := uc.Config.Get()
	if err != nil {
		return nil, err
	}

	provider, ok := uc.Providers[entity.ProviderApollo]
	apiKey := cfg.APIKeys[entity.ProviderApollo]
	if !ok || apiKey == "" {
		return nil, NewValidation("Apollo API key not configured")
	}

	out, err := provider.Search(ctx, apiKey, input)
	if err != nil {
		return nil, NewProviderFailure(err.Error())
	}
	return out, nil
}
