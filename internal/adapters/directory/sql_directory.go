package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"parcel-intake-service/internal/domain"
)

// SQLDirectory serves lookups from a recipients table. $N placeholders and a
// LIKE-based substring test keep the queries valid on both Postgres (pgx) and
// SQLite.
type SQLDirectory struct {
	DB *sql.DB
}

func NewSQLDirectory(db *sql.DB) *SQLDirectory {
	return &SQLDirectory{DB: db}
}

func (d *SQLDirectory) Lookup(ctx context.Context, key string) (*domain.RecipientEntry, error) {
	if d.DB == nil {
		return nil, errors.New("sql directory: DB is nil")
	}

	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil, nil
	}

	query := `
	SELECT name, roll_no, phone_no, email
	FROM recipients
	WHERE lower(roll_no) = $1
		OR (phone_no <> '' AND lower(phone_no) LIKE '%' || $2 || '%')
	LIMIT 1;
	`
	var e domain.RecipientEntry
	err := d.DB.QueryRowContext(ctx, query, key, key).Scan(&e.Name, &e.RollNo, &e.Phone, &e.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sql directory: query recipients: %w", err)
	}

	return &e, nil
}
