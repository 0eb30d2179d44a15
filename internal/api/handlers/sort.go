package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/ledger/internal/selection"
)

// ToggleSortRequest is a header click against the current sort state
type ToggleSortRequest struct {
	Column    string `json:"column"`
	Active    string `json:"active"`
	Direction string `json:"direction"`
}

// ToggleSort returns the sort state after a header click
// POST /api/sort/toggle
func ToggleSort(w http.ResponseWriter, r *http.Request) {
	var req ToggleSortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	active, err := selection.ParseColumn(req.Active)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	column, err := selection.ParseColumn(req.Column)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := selection.SortState{Active: active}
	if active != selection.ColumnNone {
		state.Direction, err = selection.ParseDirection(req.Direction)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	respondJSON(w, http.StatusOK, selection.ToggleSort(state, column))
}
