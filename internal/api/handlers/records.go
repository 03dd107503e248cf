package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"parcel-intake-service/internal/api/dto"
	"parcel-intake-service/internal/domain"
	"parcel-intake-service/internal/services"
)

// RecordsHandler exposes the ledger's CRUD surface. The optional ?archive=
// query parameter targets a named archive instead of the active ledger.
type RecordsHandler struct {
	Ledger *services.Ledger
}

// Records handles the collection endpoint: GET lists the selected store,
// POST inserts a manual blank row into the active ledger.
func (h *RecordsHandler) Records(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.addBlank(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RecordsHandler) list(w http.ResponseWriter, r *http.Request) {
	archive := r.URL.Query().Get("archive")

	records, err := h.Ledger.List(r.Context(), archive)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	res := dto.ListRecordsResponse{
		Archive: archive,
		Records: make([]dto.RecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.Records = append(res.Records, dto.NewRecordResponse(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RecordsHandler) addBlank(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Ledger.Append(r.Context(), domain.ParcelRecord{})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, dto.NewRecordResponse(rec))
}

// Record handles a single row: POST merges field edits, DELETE removes the
// row and re-sequences the remainder.
func (h *RecordsHandler) Record(w http.ResponseWriter, r *http.Request) {
	seqNo, ok := seqNoParam(w, r)
	if !ok {
		return
	}
	archive := r.URL.Query().Get("archive")

	switch r.Method {
	case http.MethodPost:
		var req dto.UpdateRecordRequest

		dec := json.NewDecoder(r.Body)
		defer r.Body.Close()

		if err := dec.Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
			return
		}

		rec, err := h.Ledger.Update(r.Context(), seqNo, req, archive)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.NewRecordResponse(rec))

	case http.MethodDelete:
		if err := h.Ledger.Delete(r.Context(), seqNo, archive); err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"message": "record deleted"})

	default:
		w.Header().Set("Allow", "POST, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Pickup sets the pickup state of one row verbatim.
func (h *RecordsHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	seqNo, ok := seqNoParam(w, r)
	if !ok {
		return
	}
	status := r.PathValue("status")
	archive := r.URL.Query().Get("archive")

	if err := h.Ledger.SetPickupStatus(r.Context(), seqNo, status, archive); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "pickup status updated"})
}

func seqNoParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	seqNo, err := strconv.Atoi(r.PathValue("sno"))
	if err != nil || seqNo < 1 {
		writeError(w, r, http.StatusBadRequest, "invalid sequence number")
		return 0, false
	}
	return seqNo, true
}
