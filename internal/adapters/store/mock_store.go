package store

import (
	"context"
	"fmt"
	"sort"

	"parcel-intake-service/internal/domain"
)

// MemStore is an in-memory RecordStore for tests.
type MemStore struct {
	Active   []domain.ParcelRecord
	Archives map[string][]domain.ParcelRecord

	ReadErr    error
	WriteErr   error
	WriteCalls int
}

func NewMemStore() *MemStore {
	return &MemStore{Archives: map[string][]domain.ParcelRecord{}}
}

func (s *MemStore) ReadAll(ctx context.Context, archive string) ([]domain.ParcelRecord, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if archive == "" {
		out := make([]domain.ParcelRecord, len(s.Active))
		copy(out, s.Active)
		return out, nil
	}
	records, ok := s.Archives[archive]
	if !ok {
		return nil, fmt.Errorf("mem store: archive %q not found", archive)
	}
	out := make([]domain.ParcelRecord, len(records))
	copy(out, records)
	return out, nil
}

func (s *MemStore) WriteAll(ctx context.Context, archive string, records []domain.ParcelRecord) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.WriteCalls++
	out := make([]domain.ParcelRecord, len(records))
	copy(out, records)
	if archive == "" {
		s.Active = out
		return nil
	}
	s.Archives[archive] = out
	return nil
}

func (s *MemStore) CreateArchive(ctx context.Context, name string, records []domain.ParcelRecord) (string, error) {
	final := name
	for i := 1; ; i++ {
		if _, ok := s.Archives[final]; !ok {
			break
		}
		final = fmt.Sprintf("%s_%d", name, i)
	}
	out := make([]domain.ParcelRecord, len(records))
	copy(out, records)
	s.Archives[final] = out
	return final, nil
}

func (s *MemStore) ListArchives(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.Archives))
	for name := range s.Archives {
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// MemMarker is an in-memory DayMarker for tests.
type MemMarker struct {
	Date string
}

func (m *MemMarker) Load(ctx context.Context) (string, error) { return m.Date, nil }

func (m *MemMarker) Store(ctx context.Context, date string) error {
	m.Date = date
	return nil
}
