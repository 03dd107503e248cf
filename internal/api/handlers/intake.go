package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"parcel-intake-service/internal/api/dto"
	"parcel-intake-service/internal/services"
)

const maxUploadBytes = 32 << 20

// IntakeHandler receives label photos and runs the full pipeline per file:
// persist upload, extract, classify, append to the ledger.
type IntakeHandler struct {
	Extractor *services.Extractor
	Ledger    *services.Ledger
	UploadDir string
}

func (h *IntakeHandler) Intake(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart body")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, r, http.StatusBadRequest, "no images uploaded")
		return
	}

	res := dto.IntakeResponse{Items: make([]dto.IntakeItemResponse, 0, len(files))}

	for _, fh := range files {
		if fh.Filename == "" {
			continue
		}

		name := SanitizeFilename(fh.Filename)
		path := filepath.Join(h.UploadDir, name)
		if err := saveUpload(fh, path); err != nil {
			log.Printf("save upload failed name=%s err=%v", name, err)
			writeError(w, r, http.StatusInternalServerError, "failed to store upload")
			return
		}

		// Extraction failures degrade to blank fields; intake still records
		// the parcel.
		raw, lines := h.Extractor.Extract(r.Context(), path)
		fields := services.Classify(lines)

		rec, err := h.Ledger.Append(r.Context(), fields.Record())
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		res.Items = append(res.Items, dto.IntakeItemResponse{
			Filename: name,
			RawText:  raw,
			Record:   dto.NewRecordResponse(rec),
		})
	}

	writeJSON(w, r, http.StatusCreated, res)
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename reduces a client-supplied filename to a safe basename.
// The original name is never trusted for path construction beyond this.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "upload"
	}
	return name
}

func saveUpload(fh *multipart.FileHeader, path string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
