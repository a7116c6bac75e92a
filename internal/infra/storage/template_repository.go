package storage

import "github.com/emika-hq/prospect-hub/internal/entity"

const templatesCollection = "templates"

type TemplateRepository struct {
	store *Store
}

func NewTemplateRepository(store *Store) *TemplateRepository {
	return &TemplateRepository{store: store}
}

func (r *TemplateRepository) All() ([]entity.Template, error) {
	return Load[[]entity.Template](r.store, templatesCollection)
}

func (r *TemplateRepository) Mutate(fn func([]entity.Template) ([]entity.Template, error)) error {
	return Mutate(r.store, templatesCollection, fn)
}
