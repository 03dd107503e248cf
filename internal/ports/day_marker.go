package ports

import "context"

// Port: the single persisted day-boundary marker. Exactly one marker exists;
// comparing it to the current date is the sole trigger for archival.
type DayMarker interface {
	// Load returns the last processed date, or "" when no marker exists yet.
	Load(ctx context.Context) (string, error)

	Store(ctx context.Context, date string) error
}
