package handlers

import (
	"net/http"

	"github.com/wonny/ledger/internal/dataset"
)

// Health returns server health with the dataset status
// GET /health
func Health(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "ledger-api",
			"dataset": store.Status(),
		})
	}
}
