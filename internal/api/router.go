package api

import (
	"net/http"

	"parcel-intake-service/internal/api/handlers"
	"parcel-intake-service/internal/ports"
	"parcel-intake-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(
	extractor *services.Extractor,
	ledger *services.Ledger,
	notifier *services.Notifier,
	store ports.RecordStore,
	uploadDir string,
) http.Handler {
	mux := http.NewServeMux()

	intakeHandler := &handlers.IntakeHandler{
		Extractor: extractor,
		Ledger:    ledger,
		UploadDir: uploadDir,
	}
	recordsHandler := &handlers.RecordsHandler{Ledger: ledger}
	notifyHandler := &handlers.NotifyHandler{Notifier: notifier}
	archivesHandler := &handlers.ArchivesHandler{Store: store}
	uploadsHandler := &handlers.UploadsHandler{Dir: uploadDir}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/intake", intakeHandler.Intake)
	mux.HandleFunc("/records", recordsHandler.Records)
	mux.HandleFunc("/records/{sno}", recordsHandler.Record)
	mux.HandleFunc("/records/{sno}/pickup/{status}", recordsHandler.Pickup)
	mux.HandleFunc("/notify", notifyHandler.Send)
	mux.HandleFunc("/archives", archivesHandler.List)
	mux.HandleFunc("/uploads/{name}", uploadsHandler.Serve)

	return requestIDMiddleware(loggingMiddleware(mux))
}
