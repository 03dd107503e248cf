package ports

import (
	"context"

	"parcel-intake-service/internal/domain"
)

// Port: read-only lookup into the externally maintained recipient directory.
type RecipientDirectory interface {
	// Lookup returns the first entry whose roll number equals the key or
	// whose phone number contains it, or nil when the key is empty, the
	// directory is absent, or nothing matches. A miss is a normal outcome,
	// not an error.
	Lookup(ctx context.Context, key string) (*domain.RecipientEntry, error)
}
