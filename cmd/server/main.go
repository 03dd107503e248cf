package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	_ "github.com/jackc/pgx/v5/stdlib"

	"parcel-intake-service/internal/adapters/directory"
	"parcel-intake-service/internal/adapters/mail"
	"parcel-intake-service/internal/adapters/ocr"
	recstore "parcel-intake-service/internal/adapters/store"
	"parcel-intake-service/internal/api"
	"parcel-intake-service/internal/config"
	"parcel-intake-service/internal/platform/db"
	"parcel-intake-service/internal/ports"
	"parcel-intake-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (stores, OCR providers, mail) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	uploadDir := config.Get("UPLOAD_DIR", "uploads")
	archiveDir := config.Get("ARCHIVE_DIR", "archive")
	dataFile := config.Get("DATA_FILE", "data/ledger.csv")
	contactFile := config.Get("CONTACT_FILE", "data/contacts.csv")
	markerFile := config.Get("LAST_RUN_FILE", "data/last_run_date.txt")
	port := config.Get("PORT", "8080")

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatal(fmt.Errorf("create upload dir %q: %w", uploadDir, err))
	}

	store, marker, closeStore, err := openRecordStore(dataFile, archiveDir, markerFile)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	// Recipient directory: Postgres when DATABASE_URL is set, otherwise the
	// flat contact file.
	var recipients ports.RecipientDirectory
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		recipients = directory.NewSQLDirectory(pg)
	} else {
		recipients = &directory.CSVDirectory{Path: contactFile}
	}

	// The extraction chain attempts providers in this order; unconfigured
	// ones are skipped and results are never mixed.
	providers := []ports.ExtractionProvider{
		&ocr.CLIProvider{Command: os.Getenv("OCR_CMD")},
		&ocr.ScriptProvider{ScriptPath: os.Getenv("OCR_SCRIPT")},
		ocr.NewHFProvider(os.Getenv("OCR_HF_MODEL"), os.Getenv("HF_TOKEN")),
		ocr.NewTesseractProvider(os.Getenv("OCR_TESSERACT_LANG")),
	}
	extractor := services.NewExtractor(providers, ocrTimeout())

	ledger := services.NewLedger(store, recipients, marker)

	mailer := mail.NewSMTPMailer(
		os.Getenv("SMTP_EMAIL"),
		os.Getenv("SMTP_PASSWORD"),
		config.Get("SMTP_SERVER", "smtp.gmail.com"),
		config.Get("SMTP_PORT", "587"),
	)
	if !mailer.Enabled() {
		log.Println("Mail transport disabled (SMTP_EMAIL/SMTP_PASSWORD unset); notification sends will fail per recipient")
	}
	notifier := services.NewNotifier(store, mailer)

	router := api.NewRouter(extractor, ledger, notifier, store, uploadDir)

	// Write timeout covers a full multi-image intake with a slow OCR backend.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRecordStore builds the configured record store and day marker: the
// default flat CSV pair, or the transactional SQLite backend when
// STORE_DRIVER=sqlite.
func openRecordStore(dataFile, archiveDir, markerFile string) (ports.RecordStore, ports.DayMarker, func(), error) {
	switch driver := config.Get("STORE_DRIVER", "csv"); driver {
	case "csv":
		cs, err := recstore.NewCSVStore(dataFile, archiveDir)
		if err != nil {
			return nil, nil, nil, err
		}
		return cs, &recstore.FileMarker{Path: markerFile}, func() {}, nil

	case "sqlite":
		dbPath := config.Get("DB_PATH", "data/app.db")
		sdb, err := openSQLite(dbPath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := recstore.InitSchema(sdb); err != nil {
			sdb.Close()
			return nil, nil, nil, err
		}
		return recstore.NewSQLiteStore(sdb), &recstore.SQLiteMarker{DB: sdb}, func() { sdb.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
}

func openSQLite(dbPath string) (*sql.DB, error) {
	sdb, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sdb.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sdb, nil
}

func ocrTimeout() time.Duration {
	seconds, err := strconv.Atoi(config.Get("OCR_TIMEOUT_SECONDS", "60"))
	if err != nil || seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}
