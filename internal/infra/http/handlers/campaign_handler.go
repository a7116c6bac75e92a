package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/usecase"
)

type campaignInput struct {
	Name      string         `json:"name"`
	ProfileID string         `json:"profileId"`
	Status    string         `json:"status"`
	Steps     *[]entity.Step `json:"steps"`
}

type CampaignHandler struct {
	Repo usecase.CampaignRepositoryInterface
}

func NewCampaignHandler(repo usecase.CampaignRepositoryInterface) *CampaignHandler {
	return &CampaignHandler{Repo: repo}
}

// HandleList (GET /campaigns)
func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Repo.All()
	if err != nil {
		writeError(w, err)
		return
	}
	if campaigns == nil {
		campaigns = []entity.Campaign{}
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// HandleCreate (POST /campaigns)
func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input campaignInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	campaign, err := entity.NewCampaign(input.Name)
	if err != nil {
		writeError(w, usecase.NewValidation(err.Error()))
		return
	}
	campaign.ProfileID = input.ProfileID
	if input.Status != "" {
		campaign.Status = input.Status
	}
	if input.Steps != nil {
		campaign.Steps = *input.Steps
	}
	if err := campaign.Validate(); err != nil {
		writeError(w, usecase.NewValidation(err.Error()))
		return
	}

	err = h.Repo.Mutate(func(campaigns []entity.Campaign) ([]entity.Campaign, error) {
		return append(campaigns, *campaign), nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

// HandleUpdate (PUT /campaigns/{id})
func (h *CampaignHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input campaignInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	var updated entity.Campaign
	err := h.Repo.Mutate(func(campaigns []entity.Campaign) ([]entity.Campaign, error) {
		for i := range campaigns {
			if campaigns[i].ID != id {
				continue
			}
			if input.Name != "" {
				campaigns[i].Name = input.Name
			}
			if input.ProfileID != "" {
				campaigns[i].ProfileID = input.ProfileID
			}
			if input.Status != "" {
				campaigns[i].Status = input.Status
			}
			if input.Steps != nil {
				campaigns[i].Steps = *input.Steps
			}
			if err := campaigns[i].Validate(); err != nil {
				return nil, usecase.NewValidation(err.Error())
			}
			updated = campaigns[i]
			return campaigns, nil
		}
		return nil, usecase.NewNotFound("campaign not found")
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete (DELETE /campaigns/{id})
func (h *CampaignHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Repo.Mutate(func(campaigns []entity.Campaign) ([]entity.Campaign, error) {
		for i := range campaigns {
			if campaigns[i].ID == id {
				return append(campaigns[:i], campaigns[i+1:]...), nil
			}
		}
		return nil, usecase.NewNotFound("campaign not found")
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleAddProspects (POST /campaigns/{id}/prospects) is an idempotent
// set-union add of record ids.
func (h *CampaignHandler) HandleAddProspects(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		RecordIDs []string `json:"recordIds"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if len(body.RecordIDs) == 0 {
		writeError(w, usecase.NewValidation("no record ids"))
		return
	}

	added, total := 0, 0
	err := h.Repo.Mutate(func(campaigns []entity.Campaign) ([]entity.Campaign, error) {
		for i := range campaigns {
			if campaigns[i].ID != id {
				continue
			}
			added = campaigns[i].AddRecords(body.RecordIDs)
			total = len(campaigns[i].RecordIDs)
			if added == 0 {
				return nil, usecase.ErrNoChange
			}
			return campaigns, nil
		}
		return nil, usecase.NewNotFound("campaign not found")
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"added": added, "total": total})
}
