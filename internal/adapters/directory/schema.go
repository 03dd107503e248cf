package directory

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// InitSchema creates the recipients table used by SQLDirectory.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS recipients (
		roll_no TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		phone_no TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT ''
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init schema: create recipients table: %w", err)
	}

	return nil
}

// SeedFromCSV loads the externally maintained contact file (columns Name,
// phno, rollno, email) into the recipients table, replacing rows that share
// a roll number.
func SeedFromCSV(db *sql.DB, csvPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("seed recipients: open %q: %w", csvPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("seed recipients: read %q: %w", csvPath, err)
	}
	if len(rows) < 2 {
		return nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"rollno"} {
		if _, ok := col[required]; !ok {
			return fmt.Errorf("seed recipients: %q column missing in %q", required, csvPath)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed recipients: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO recipients (roll_no, name, phone_no, email)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (roll_no) DO UPDATE SET
		name = excluded.name,
		phone_no = excluded.phone_no,
		email = excluded.email;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed recipients: prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, row := range rows[1:] {
		roll := field(row, "rollno")
		if roll == "" {
			return fmt.Errorf("seed recipients: empty rollno at row %d", i+2)
		}
		if _, err := stmt.Exec(roll, field(row, "name"), field(row, "phno"), field(row, "email")); err != nil {
			return fmt.Errorf("seed recipients: insert rollno=%s: %w", roll, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed recipients: commit tx: %w", err)
	}

	return nil
}
