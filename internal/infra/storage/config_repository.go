package storage

import "github.com/emika-hq/prospect-hub/internal/entity"

const configCollection = "config"

// ConfigRepository stores the settings singleton. seedApolloKey comes from
// the environment and is used only while no key has been saved through the
// API, so a deployment can start pre-configured.
type ConfigRepository struct {
	store         *Store
	seedApolloKey string
}

func NewConfigRepository(store *Store, seedApolloKey string) *ConfigRepository {
	return &ConfigRepository{store: store, seedApolloKey: seedApolloKey}
}

func (r *ConfigRepository) Get() (entity.Config, error) {
	cfg, err := Load[entity.Config](r.store, configCollection)
	if err != nil {
		return entity.Config{}, err
	}
	cfg.Normalize()
	if cfg.APIKeys[entity.ProviderApollo] == "" && r.seedApolloKey != "" {
		cfg.APIKeys[entity.ProviderApollo] = r.seedApolloKey
	}
	return cfg, nil
}

func (r *ConfigRepository) Mutate(fn func(entity.Config) (entity.Config, error)) error {
	return Mutate(r.store, configCollection, func(cfg entity.Config) (entity.Config, error) {
		cfg.Normalize()
		return fn(cfg)
	})
}
