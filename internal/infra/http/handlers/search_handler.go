package handlers

import (
	"net/http"

	"github.com/emika-hq/prospect-hub/internal/infra/integration/apollo"
	"github.com/emika-hq/prospect-hub/internal/usecase"
)

type searchInput struct {
	Query   string `json:"query"`
	Filters struct {
		Titles       []string `json:"titles"`
		Locations    []string `json:"locations"`
		CompanySizes []string `json:"companySizes"`
		Page         int      `json:"page"`
		PerPage      int      `json:"perPage"`
	} `json:"filters"`
}

type SearchHandler struct {
	UC *usecase.SearchPeopleUseCase
}

func NewSearchHandler(uc *usecase.SearchPeopleUseCase) *SearchHandler {
	return &SearchHandler{UC: uc}
}

// Handle (POST /search) proxies a people search to the provider.
func (h *SearchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input searchInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.UC.Execute(r.Context(), apollo.SearchInput{
		Query:        input.Query,
		Titles:       input.Filters.Titles,
		Locations:    input.Filters.Locations,
		CompanySizes: input.Filters.CompanySizes,
		Page:         input.Filters.Page,
		PerPage:      input.Filters.PerPage,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
