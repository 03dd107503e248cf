package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"parcel-intake-service/internal/domain"
)

const archiveExt = ".csv"

// CSVStore persists parcel records as a header-prefixed delimited file, with
// daily archives as sibling files in a separate directory.
//
// Unknown columns on read are ignored and missing columns default to empty
// strings, so the store tolerates files written by older or newer schemas.
// There is no in-memory cache; every read re-reads from disk.
type CSVStore struct {
	DataPath   string
	ArchiveDir string
}

func NewCSVStore(dataPath, archiveDir string) (*CSVStore, error) {
	if dir := filepath.Dir(dataPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("csv store: create data dir %q: %w", dir, err)
		}
	}
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("csv store: create archive dir %q: %w", archiveDir, err)
	}
	return &CSVStore{DataPath: dataPath, ArchiveDir: archiveDir}, nil
}

// path resolves a store selector to a file path, rejecting anything that
// would escape the archive directory.
func (s *CSVStore) path(archive string) (string, error) {
	if archive == "" {
		return s.DataPath, nil
	}
	if archive != filepath.Base(archive) || archive == "." || archive == ".." {
		return "", fmt.Errorf("csv store: invalid archive name %q", archive)
	}
	return filepath.Join(s.ArchiveDir, archive), nil
}

func (s *CSVStore) ReadAll(ctx context.Context, archive string) ([]domain.ParcelRecord, error) {
	path, err := s.path(archive)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		// The active ledger starts out absent; that reads as empty.
		if os.IsNotExist(err) && archive == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("csv store: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv store: read %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]domain.ParcelRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var rec domain.ParcelRecord
		for i, col := range header {
			if i >= len(row) {
				break
			}
			rec.SetField(strings.TrimSpace(col), row[i])
		}
		records = append(records, rec)
	}

	return records, nil
}

func (s *CSVStore) WriteAll(ctx context.Context, archive string, records []domain.ParcelRecord) error {
	path, err := s.path(archive)
	if err != nil {
		return err
	}
	return writeCSV(path, records)
}

// CreateArchive freezes records under a file named after name. A same-second
// rollover producing a duplicate name gets a numeric suffix, so repeated
// resets never collide.
func (s *CSVStore) CreateArchive(ctx context.Context, name string, records []domain.ParcelRecord) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("csv store: invalid archive name %q", name)
	}

	final := name + archiveExt
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(s.ArchiveDir, final)); os.IsNotExist(err) {
			break
		}
		final = fmt.Sprintf("%s_%d%s", name, i, archiveExt)
	}

	if err := writeCSV(filepath.Join(s.ArchiveDir, final), records); err != nil {
		return "", fmt.Errorf("csv store: create archive %q: %w", final, err)
	}
	return final, nil
}

// ListArchives returns archive filenames, newest first (names embed the
// rollover timestamp, so lexical order is chronological).
func (s *CSVStore) ListArchives(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.ArchiveDir)
	if err != nil {
		return nil, fmt.Errorf("csv store: read archive dir %q: %w", s.ArchiveDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), archiveExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	return names, nil
}

func writeCSV(path string, records []domain.ParcelRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv store: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(domain.Columns); err != nil {
		return fmt.Errorf("csv store: write header: %w", err)
	}

	row := make([]string, len(domain.Columns))
	for i := range records {
		for j, col := range domain.Columns {
			v, _ := records[i].Field(col)
			row[j] = v
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv store: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv store: flush %q: %w", path, err)
	}
	return f.Sync()
}
