package handlers

import (
	"net/http"
	"path/filepath"
)

// UploadsHandler serves stored label images back to the operator UI.
type UploadsHandler struct {
	Dir string
}

func (h *UploadsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := SanitizeFilename(r.PathValue("name"))
	http.ServeFile(w, r, filepath.Join(h.Dir, name))
}
