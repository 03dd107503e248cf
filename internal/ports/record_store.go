package ports

import (
	"context"

	"parcel-intake-service/internal/domain"
)

// ActiveStore selects the current-day ledger in RecordStore operations.
const ActiveStore = ""

// Port: a boundary around the flat store holding parcel rows.
//
// The archive argument selects which store a call addresses: ActiveStore for
// the current-day ledger, otherwise the name of a frozen daily archive.
// Implementations assume a single writer per store at a time; no locking is
// provided.
type RecordStore interface {
	// ReadAll returns every record in the selected store. A missing active
	// store reads as empty; a missing archive is an error.
	ReadAll(ctx context.Context, archive string) ([]domain.ParcelRecord, error)

	// WriteAll replaces the selected store's contents. An empty slice leaves
	// a header-only store behind.
	WriteAll(ctx context.Context, archive string, records []domain.ParcelRecord) error

	// CreateArchive freezes records under a new archive derived from name and
	// returns the final name, suffixed when name is already taken.
	CreateArchive(ctx context.Context, name string, records []domain.ParcelRecord) (string, error)

	// ListArchives returns archive names, newest first.
	ListArchives(ctx context.Context) ([]string, error)
}
