package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"parcel-intake-service/internal/adapters/directory"
	"parcel-intake-service/internal/config"
	"parcel-intake-service/internal/platform/db"
)

// dbtool initializes the recipient-directory schema in Postgres and imports
// the externally maintained contact file into it.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Println("Initializing recipient directory schema...")
	if err := directory.InitSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	contactFile := config.Get("CONTACT_FILE", "data/contacts.csv")
	log.Printf("Importing recipients from %s...", contactFile)
	if err := directory.SeedFromCSV(db, contactFile); err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Println("Import complete.")
}
