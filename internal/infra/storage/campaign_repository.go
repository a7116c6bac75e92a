package storage

import "github.com/emika-hq/prospect-hub/internal/entity"

const campaignsCollection = "campaigns"

type CampaignRepository struct {
	store *Store
}

func NewCampaignRepository(store *Store) *CampaignRepository {
	return &CampaignRepository{store: store}
}

func (r *CampaignRepository) All() ([]entity.Campaign, error) {
	return Load[[]entity.Campaign](r.store, campaignsCollection)
}

func (r *CampaignRepository) Mutate(fn func([]entity.Campaign) ([]entity.Campaign, error)) error {
	return Mutate(r.store, campaignsCollection, fn)
}
