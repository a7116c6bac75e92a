package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/infra/http/middleware"
	"github.com/emika-hq/prospect-hub/internal/usecase"
)

type profileInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Criteria    *entity.Criteria `json:"criteria"`
	Color       string           `json:"color"`
}

type ProfileHandler struct {
	Repo    usecase.ProfileRepositoryInterface
	Rescore *usecase.RescoreAllUseCase
}

func NewProfileHandler(repo usecase.ProfileRepositoryInterface, rescore *usecase.RescoreAllUseCase) *ProfileHandler {
	return &ProfileHandler{Repo: repo, Rescore: rescore}
}

// HandleList (GET /profiles)
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Repo.All()
	if err != nil {
		writeError(w, err)
		return
	}
	if profiles == nil {
		profiles = []entity.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

// HandleCreate (POST /profiles). Every create triggers a full rescore pass.
func (h *ProfileHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input profileInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	profile, err := entity.NewProfile(input.Name, input.Description)
	if err != nil {
		writeError(w, usecase.NewValidation(err.Error()))
		return
	}
	if input.Criteria != nil {
		profile.Criteria = *input.Criteria
	}
	if input.Color != "" {
		profile.Color = input.Color
	}

	err = h.Repo.Mutate(func(profiles []entity.Profile) ([]entity.Profile, error) {
		return append(profiles, *profile), nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.rescore(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// HandleUpdate (PUT /profiles/{id}). Every update triggers a full rescore.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input profileInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	var updated entity.Profile
	err := h.Repo.Mutate(func(profiles []entity.Profile) ([]entity.Profile, error) {
		for i := range profiles {
			if profiles[i].ID != id {
				continue
			}
			if input.Name != "" {
				profiles[i].Name = input.Name
			}
			if input.Description != "" {
				profiles[i].Description = input.Description
			}
			if input.Criteria != nil {
				profiles[i].Criteria = *input.Criteria
			}
			if input.Color != "" {
				profiles[i].Color = input.Color
			}
			updated = profiles[i]
			return profiles, nil
		}
		return nil, usecase.NewNotFound("profile not found")
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.rescore(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete (DELETE /profiles/{id}). Deliberately no rescore: prospects
// keep their last score and their now-dangling profileId.
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Repo.Mutate(func(profiles []entity.Profile) ([]entity.Profile, error) {
		for i := range profiles {
			if profiles[i].ID == id {
				return append(profiles[:i], profiles[i+1:]...), nil
			}
		}
		return nil, usecase.NewNotFound("profile not found")
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// rescore runs the full pass after a profile write. A failure here is a
// store failure and fails the request; the profile write itself stands.
func (h *ProfileHandler) rescore() error {
	if err := h.Rescore.Execute(); err != nil {
		return err
	}
	middleware.RecordRescore()
	return nil
}
