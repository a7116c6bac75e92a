package handlers

import (
	"math"
	"net/http"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/usecase"
)

type SystemHandler struct {
	Prospects usecase.ProspectRepositoryInterface
	Profiles  usecase.ProfileRepositoryInterface
	Campaigns usecase.CampaignRepositoryInterface
	Config    usecase.ConfigRepositoryInterface
}

func NewSystemHandler(
	prospects usecase.ProspectRepositoryInterface,
	profiles usecase.ProfileRepositoryInterface,
	campaigns usecase.CampaignRepositoryInterface,
	config usecase.ConfigRepositoryInterface,
) *SystemHandler {
	return &SystemHandler{Prospects: prospects, Profiles: profiles, Campaigns: campaigns, Config: config}
}

// HandleHealthz (GET /healthz)
func (h *SystemHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStatus (GET /status) reports first-run: nothing stored and no
// credential configured. The UI uses it to show onboarding.
func (h *SystemHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	prospects, err := h.Prospects.All()
	if err != nil {
		writeError(w, err)
		return
	}
	profiles, err := h.Profiles.All()
	if err != nil {
		writeError(w, err)
		return
	}
	cfg, err := h.Config.Get()
	if err != nil {
		writeError(w, err)
		return
	}

	firstRun := len(prospects) == 0 && len(profiles) == 0 && !cfg.HasCredential()
	writeJSON(w, http.StatusOK, map[string]bool{"firstRun": firstRun})
}

type profileBreakdown struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Count    int    `json:"count"`
	AvgScore int    `json:"avgScore"`
}

type campaignSummary struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Status        string               `json:"status"`
	Stats         entity.CampaignStats `json:"stats"`
	ProspectCount int                  `json:"prospectCount"`
}

// HandleAnalytics (GET /analytics) aggregates pipeline and coverage stats.
func (h *SystemHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	prospects, err := h.Prospects.All()
	if err != nil {
		writeError(w, err)
		return
	}
	profiles, err := h.Profiles.All()
	if err != nil {
		writeError(w, err)
		return
	}
	campaigns, err := h.Campaigns.All()
	if err != nil {
		writeError(w, err)
		return
	}

	statusCounts := map[string]int{}
	enriched, withEmail, withPhone := 0, 0, 0
	for _, p := range prospects {
		statusCounts[p.Status]++
		if p.Enrichment.EnrichedAt != "" {
			enriched++
		}
		if p.Email != "" {
			withEmail++
		}
		if p.Phone != "" {
			withPhone++
		}
	}

	breakdown := make([]profileBreakdown, 0, len(profiles))
	for _, profile := range profiles {
		count, sum := 0, 0
		for _, p := range prospects {
			if p.ProfileID == profile.ID {
				count++
				sum += p.FitScore
			}
		}
		avg := 0
		if count > 0 {
			avg = int(math.Round(float64(sum) / float64(count)))
		}
		breakdown = append(breakdown, profileBreakdown{
			ID: profile.ID, Name: profile.Name, Color: profile.Color,
			Count: count, AvgScore: avg,
		})
	}

	summaries := make([]campaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		summaries = append(summaries, campaignSummary{
			ID: c.ID, Name: c.Name, Status: c.Status, Stats: c.Stats,
			ProspectCount: len(c.RecordIDs),
		})
	}

	enrichmentRate := 0
	if len(prospects) > 0 {
		enrichmentRate = int(math.Round(float64(enriched) / float64(len(prospects)) * 100))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":            len(prospects),
		"statusCounts":     statusCounts,
		"enriched":         enriched,
		"withEmail":        withEmail,
		"withPhone":        withPhone,
		"enrichmentRate":   enrichmentRate,
		"profileBreakdown": breakdown,
		"campaignStats":    summaries,
	})
}
