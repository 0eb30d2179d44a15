package handlers

import (
	"net/http"

	"github.com/wonny/ledger/internal/dataset"
	"github.com/wonny/ledger/pkg/logger"
)

// ReloadHandler refreshes the document on demand
type ReloadHandler struct {
	refresher *dataset.Refresher
	store     *dataset.Store
	logger    *logger.Logger
}

// NewReloadHandler creates a new reload handler
func NewReloadHandler(refresher *dataset.Refresher, store *dataset.Store, log *logger.Logger) *ReloadHandler {
	return &ReloadHandler{
		refresher: refresher,
		store:     store,
		logger:    log,
	}
}

// ReloadResponse reports the reload result
type ReloadResponse struct {
	Status    string         `json:"status"`
	Companies int            `json:"companies"`
	Dataset   dataset.Status `json:"dataset"`
}

// Reload re-reads the document, bypassing the cache
// POST /api/reload
func (h *ReloadHandler) Reload(w http.ResponseWriter, r *http.Request) {
	n, err := h.refresher.Refresh(r.Context(), true)
	if err != nil {
		// 기존 목록은 유지됨
		respondError(w, http.StatusBadGateway, "Failed to reload document: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ReloadResponse{
		Status:    "ok",
		Companies: n,
		Dataset:   h.store.Status(),
	})
}
