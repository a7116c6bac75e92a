package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/emika-hq/prospect-hub/internal/infra/http/middleware"
	"github.com/emika-hq/prospect-hub/internal/usecase"
)

const maxImportSize = 10 << 20 // 10 MB upload cap, same as the UI enforces

type ProspectHandler struct {
	UC       *usecase.ProspectsUseCase
	ImportUC *usecase.ImportProspectsUseCase
	EnrichUC *usecase.EnrichProspectsUseCase
}

func NewProspectHandler(uc *usecase.ProspectsUseCase, importUC *usecase.ImportProspectsUseCase, enrichUC *usecase.EnrichProspectsUseCase) *ProspectHandler {
	return &ProspectHandler{UC: uc, ImportUC: importUC, EnrichUC: enrichUC}
}

// HandleList (GET /records)
func (h *ProspectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	out, err := h.UC.List(usecase.ListProspectsInput{
		Status:  q.Get("status"),
		Profile: q.Get("profile"),
		Search:  q.Get("search"),
		Sort:    q.Get("sort"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleCreate (POST /records)
func (h *ProspectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.ProspectInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.UC.Create(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleUpdate (PUT /records/{id})
func (h *ProspectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch usecase.ProspectPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.UC.Update(id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDelete (DELETE /records/{id})
func (h *ProspectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleBulkDelete (DELETE /records)
func (h *ProspectHandler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	deleted, err := h.UC.BulkDelete(body.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

// HandleImport (POST /records/import) accepts a multipart CSV upload with an
// optional "mapping" form field of csvColumn→field assignments.
func (h *ProspectHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, usecase.NewValidation("invalid multipart form"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, usecase.NewValidation("file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		writeError(w, usecase.NewValidation("could not read upload"))
		return
	}

	var mapping map[string]string
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			writeError(w, usecase.NewValidation("invalid mapping"))
			return
		}
	}

	result, err := h.ImportUC.Execute(r.Context(), data, mapping)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.RecordImport(result.Imported, result.Duplicates)
	writeJSON(w, http.StatusOK, result)
}

// HandleEnrich (POST /records/enrich)
func (h *ProspectHandler) HandleEnrich(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RecordIDs []string `json:"recordIds"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	results, err := h.EnrichUC.Execute(r.Context(), body.RecordIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, res := range results {
		middleware.RecordEnrichment(res.Provider, res.Error == "")
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// HandleBulkAdd (POST /records/bulk) admits pre-fetched search results.
func (h *ProspectHandler) HandleBulkAdd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Records []usecase.ProspectInput `json:"records"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.ImportUC.BulkAdd(r.Context(), body.Records)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.RecordImport(result.Imported, result.Duplicates)
	writeJSON(w, http.StatusOK, result)
}
