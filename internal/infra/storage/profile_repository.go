package storage

import "github.com/emika-hq/prospect-hub/internal/entity"

const profilesCollection = "profiles"

type ProfileRepository struct {
	store *Store
}

func NewProfileRepository(store *Store) *ProfileRepository {
	return &ProfileRepository{store: store}
}

func (r *ProfileRepository) All() ([]entity.Profile, error) {
	return Load[[]entity.Profile](r.store, profilesCollection)
}

func (r *ProfileRepository) Mutate(fn func([]entity.Profile) ([]entity.Profile, error)) error {
	return Mutate(r.store, profilesCollection, fn)
}
