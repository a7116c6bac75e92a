package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/emika-hq/prospect-hub/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the usecase taxonomy onto HTTP statuses. Technical
// failures are logged here and never leak internals beyond their message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case usecase.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case usecase.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case usecase.IsProvider(err):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		if !usecase.IsTechnicalError(err) {
			err = usecase.NewStoreFailure(err.Error())
		}
		log.Printf("store failure: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return usecase.NewValidation("invalid JSON: " + err.Error())
	}
	return nil
}
