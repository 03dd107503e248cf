package handlers

import (
	"log"
	"net/http"

	"parcel-intake-service/internal/api/dto"
	"parcel-intake-service/internal/services"
)

// NotifyHandler triggers the pending-notification batch.
type NotifyHandler struct {
	Notifier *services.Notifier
}

func (h *NotifyHandler) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	result, err := h.Notifier.SendPendingBatch(r.Context())
	if err != nil {
		log.Printf("notification batch failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.NotifyResponse{
		Sent:     result.SentSeqNos,
		Failures: make([]dto.NotifyFailureResponse, 0, len(result.Failures)),
	}
	if res.Sent == nil {
		res.Sent = []int{}
	}
	for _, f := range result.Failures {
		res.Failures = append(res.Failures, dto.NotifyFailureResponse{Email: f.Email, Reason: f.Reason})
	}

	writeJSON(w, r, http.StatusOK, res)
}
