package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parcel-intake-service/internal/domain"
	"parcel-intake-service/internal/platform/obs"
)

// SQLiteStore is the transactional alternative to the flat CSV file: parcel
// rows live in one table with an archive column ('' marks the active
// ledger). Swapping it in changes nothing in the pipeline logic.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

// InitSchema creates the parcel and marker tables.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createParcelsQuery := `
	CREATE TABLE IF NOT EXISTS parcels (
		archive TEXT NOT NULL DEFAULT '',
		seq_no INTEGER NOT NULL,
		label_id TEXT NOT NULL DEFAULT '',
		roll_no TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		awb_no TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone_no TEXT NOT NULL DEFAULT '',
		arrived_at TEXT NOT NULL DEFAULT '',
		parcel_no TEXT NOT NULL DEFAULT '',
		picked TEXT NOT NULL DEFAULT '',
		signature TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		mail_status TEXT NOT NULL DEFAULT '',
		mail_time TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (archive, seq_no)
	);
	`

	createMarkerQuery := `
	CREATE TABLE IF NOT EXISTS day_marker (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		last_run TEXT NOT NULL
	);
	`

	statements := []string{createParcelsQuery, createMarkerQuery}
	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

func (s *SQLiteStore) ReadAll(ctx context.Context, archive string) (_ []domain.ParcelRecord, err error) {
	defer obs.Time(ctx, "store.sqlite.ReadAll")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite store: DB is nil")
	}

	if archive != "" {
		exists, err := s.archiveExists(ctx, archive)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("sqlite store: archive %q: %w", archive, sql.ErrNoRows)
		}
	}

	query := `
	SELECT
		seq_no, label_id, roll_no, name, company, awb_no,
		email, phone_no, arrived_at, parcel_no, picked, signature,
		status, mail_status, mail_time
	FROM parcels
	WHERE archive = $1
	ORDER BY seq_no;
	`
	rows, err := s.DB.QueryContext(ctx, query, archive)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: query parcels: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ParcelRecord, 0, 64)
	for rows.Next() {
		var r domain.ParcelRecord
		err := rows.Scan(
			&r.SeqNo, &r.LabelID, &r.RollNo, &r.Name, &r.Company, &r.AWB,
			&r.Email, &r.Phone, &r.ArrivedAt, &r.ParcelNo, &r.Picked, &r.Signature,
			&r.Status, &r.MailStatus, &r.MailTime,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite store: row iteration: %w", err)
	}

	return records, nil
}

func (s *SQLiteStore) WriteAll(ctx context.Context, archive string, records []domain.ParcelRecord) (err error) {
	defer obs.Time(ctx, "store.sqlite.WriteAll")(&err)

	if s.DB == nil {
		return errors.New("sqlite store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite store: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM parcels WHERE archive = $1;`, archive); err != nil {
		return fmt.Errorf("sqlite store: clear %q: %w", archive, err)
	}

	if err := insertRecords(ctx, tx, archive, records); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite store: commit tx: %w", err)
	}

	return nil
}

func (s *SQLiteStore) CreateArchive(ctx context.Context, name string, records []domain.ParcelRecord) (string, error) {
	if s.DB == nil {
		return "", errors.New("sqlite store: DB is nil")
	}
	if name == "" {
		return "", errors.New("sqlite store: empty archive name")
	}

	final := name
	for i := 1; ; i++ {
		exists, err := s.archiveExists(ctx, final)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		final = fmt.Sprintf("%s_%d", name, i)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("sqlite store: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRecords(ctx, tx, final, records); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("sqlite store: commit tx: %w", err)
	}

	return final, nil
}

func (s *SQLiteStore) ListArchives(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store: DB is nil")
	}

	query := `
	SELECT DISTINCT archive
	FROM parcels
	WHERE archive <> ''
	ORDER BY archive DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: list archives: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 16)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite store: scan archive name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite store: row iteration: %w", err)
	}

	return names, nil
}

func (s *SQLiteStore) archiveExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.DB.QueryRowContext(ctx, `SELECT 1 FROM parcels WHERE archive = $1 LIMIT 1;`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite store: check archive %q: %w", name, err)
	}
	return true, nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, archive string, records []domain.ParcelRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
	INSERT INTO parcels (
		archive, seq_no, label_id, roll_no, name, company, awb_no,
		email, phone_no, arrived_at, parcel_no, picked, signature,
		status, mail_status, mail_time
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("sqlite store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			archive, r.SeqNo, r.LabelID, r.RollNo, r.Name, r.Company, r.AWB,
			r.Email, r.Phone, r.ArrivedAt, r.ParcelNo, r.Picked, r.Signature,
			r.Status, r.MailStatus, r.MailTime,
		)
		if err != nil {
			return fmt.Errorf("sqlite store: insert seq_no=%d: %w", r.SeqNo, err)
		}
	}

	return nil
}

// SQLiteMarker stores the day-boundary marker in the same database as the
// SQLite record store.
type SQLiteMarker struct {
	DB *sql.DB
}

func (m *SQLiteMarker) Load(ctx context.Context) (string, error) {
	var last string
	err := m.DB.QueryRowContext(ctx, `SELECT last_run FROM day_marker WHERE id = 1;`).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("day marker: query: %w", err)
	}
	return last, nil
}

func (m *SQLiteMarker) Store(ctx context.Context, date string) error {
	query := `
	INSERT INTO day_marker (id, last_run) VALUES (1, $1)
	ON CONFLICT (id) DO UPDATE SET last_run = excluded.last_run;
	`
	if _, err := m.DB.ExecContext(ctx, query, date); err != nil {
		return fmt.Errorf("day marker: upsert: %w", err)
	}
	return nil
}
