package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/usecase"
)

type templateInput struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	MergeFields *[]string `json:"mergeFields"`
}

type TemplateHandler struct {
	Repo usecase.TemplateRepositoryInterface
}

func NewTemplateHandler(repo usecase.TemplateRepositoryInterface) *TemplateHandler {
	return &TemplateHandler{Repo: repo}
}

// HandleList (GET /templates)
func (h *TemplateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Repo.All()
	if err != nil {
		writeError(w, err)
		return
	}
	if templates == nil {
		templates = []entity.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

// HandleCreate (POST /templates)
func (h *TemplateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input templateInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	tpl, err := entity.NewTemplate(input.Name, input.Category)
	if err != nil {
		writeError(w, usecase.NewValidation(err.Error()))
		return
	}
	tpl.Subject = input.Subject
	tpl.Body = input.Body
	if input.MergeFields != nil {
		tpl.MergeFields = *input.MergeFields
	}

	err = h.Repo.Mutate(func(templates []entity.Template) ([]entity.Template, error) {
		return append(templates, *tpl), nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

// HandleUpdate (PUT /templates/{id})
func (h *TemplateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input templateInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	var updated entity.Template
	err := h.Repo.Mutate(func(templates []entity.Template) ([]entity.Template, error) {
		for i := range templates {
			if templates[i].ID != id {
				continue
			}
			if input.Name != "" {
				templates[i].Name = input.Name
			}
			if input.Category != "" {
				templates[i].Category = input.Category
			}
			if input.Subject != "" {
				templates[i].Subject = input.Subject
			}
			if input.Body != "" {
				templates[i].Body = input.Body
			}
			if input.MergeFields != nil {
				templates[i].MergeFields = *input.MergeFields
			}
			if err := templates[i].Validate(); err != nil {
				return nil, usecase.NewValidation(err.Error())
			}
			updated = templates[i]
			return templates, nil
		}
		return nil, usecase.NewNotFound("template not found")
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete (DELETE /templates/{id})
func (h *TemplateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Repo.Mutate(func(templates []entity.Template) ([]entity.Template, error) {
		for i := range templates {
			if templates[i].ID == id {
				return append(templates[:i], templates[i+1:]...), nil
			}
		}
		return nil, usecase.NewNotFound("template not found")
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
