package directory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"parcel-intake-service/internal/domain"
)

// CSVDirectory scans a contact file on every lookup. No index is kept: the
// file is externally maintained, small, and may change between calls.
type CSVDirectory struct {
	Path string
}

// Lookup returns the first row whose roll number equals the key or whose
// phone number contains it. An absent file, empty key, or no match all read
// as a miss.
func (d *CSVDirectory) Lookup(ctx context.Context, key string) (*domain.RecipientEntry, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil, nil
	}

	f, err := os.Open(d.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("csv directory: open %q: %w", d.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv directory: read %q: %w", d.Path, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, row := range rows[1:] {
		roll := strings.ToLower(field(row, "rollno"))
		phone := strings.ToLower(field(row, "phno"))

		if (roll != "" && key == roll) || (phone != "" && strings.Contains(phone, key)) {
			return &domain.RecipientEntry{
				Name:   field(row, "name"),
				Email:  field(row, "email"),
				RollNo: field(row, "rollno"),
				Phone:  field(row, "phno"),
			}, nil
		}
	}

	return nil, nil
}
