package directory

import (
	"context"
	"strings"

	"parcel-intake-service/internal/domain"
)

// MockDirectory resolves lookups from a fixed entry list, for tests.
type MockDirectory struct {
	Entries []domain.RecipientEntry
	Err     error

	Keys []string
}

func (d *MockDirectory) Lookup(ctx context.Context, key string) (*domain.RecipientEntry, error) {
	d.Keys = append(d.Keys, key)
	if d.Err != nil {
		return nil, d.Err
	}

	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil, nil
	}

	for i := range d.Entries {
		e := &d.Entries[i]
		roll := strings.ToLower(e.RollNo)
		phone := strings.ToLower(e.Phone)
		if (roll != "" && key == roll) || (phone != "" && strings.Contains(phone, key)) {
			out := *e
			return &out, nil
		}
	}

	return nil, nil
}
