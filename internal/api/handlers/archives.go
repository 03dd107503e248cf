package handlers

import (
	"log"
	"net/http"

	"parcel-intake-service/internal/api/dto"
	"parcel-intake-service/internal/ports"
)

// ArchivesHandler lists frozen daily snapshots of the ledger.
type ArchivesHandler struct {
	Store ports.RecordStore
}

func (h *ArchivesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	names, err := h.Store.ListArchives(r.Context())
	if err != nil {
		log.Printf("list archives failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListArchivesResponse{Archives: names})
}
