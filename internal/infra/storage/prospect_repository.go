package storage

import "github.com/emika-hq/prospect-hub/internal/entity"

const prospectsCollection = "prospects"

type ProspectRepository struct {
	store *Store
}

func NewProspectRepository(store *Store) *ProspectRepository {
	return &ProspectRepository{store: store}
}

func (r *ProspectRepository) All() ([]entity.Prospect, error) {
	return Load[[]entity.Prospect](r.store, prospectsCollection)
}

// Mutate applies fn to the prospect collection under its exclusive lock.
func (r *ProspectRepository) Mutate(fn func([]entity.Prospect) ([]entity.Prospect, error)) error {
	return Mutate(r.store, prospectsCollection, fn)
}
