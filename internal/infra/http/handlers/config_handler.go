package handlers

import (
	"net/http"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/usecase"
)

type configInput struct {
	APIKeys        map[string]string `json:"apiKeys"`
	WaterfallOrder []string          `json:"waterfallOrder"`
	SenderEmail    *string           `json:"senderEmail"`
	SenderName     *string           `json:"senderName"`
}

type ConfigHandler struct {
	Repo usecase.ConfigRepositoryInterface
}

func NewConfigHandler(repo usecase.ConfigRepositoryInterface) *ConfigHandler {
	return &ConfigHandler{Repo: repo}
}

// HandleGet (GET /config) always returns credentials in masked display form.
func (h *ConfigHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Repo.Get()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg.Masked())
}

// HandleUpdate (PUT /config). A submitted key that still contains the mask
// marker is a display placeholder and is ignored, so a client can echo the
// GET response back without wiping real credentials.
func (h *ConfigHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input configInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	err := h.Repo.Mutate(func(cfg entity.Config) (entity.Config, error) {
		for k, v := range input.APIKeys {
			if v != "" && !entity.IsMaskedSecret(v) {
				cfg.APIKeys[k] = v
			}
		}
		if len(input.WaterfallOrder) > 0 {
			cfg.WaterfallOrder = input.WaterfallOrder
		}
		if input.SenderEmail != nil {
			cfg.SenderEmail = *input.SenderEmail
		}
		if input.SenderName != nil {
			cfg.SenderName = *input.SenderName
		}
		return cfg, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
