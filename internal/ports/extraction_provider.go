package ports

import "context"

// Port: one pluggable OCR backend in the ordered extraction chain.
type ExtractionProvider interface {
	Name() string

	// Configured reports whether the provider's required settings are
	// present. Unconfigured providers are skipped, never attempted.
	Configured() bool

	// TryExtract runs OCR on a stored image and returns the raw text it
	// produced. An error or empty result moves the chain on to the next
	// provider; a provider is never retried in place.
	TryExtract(ctx context.Context, imagePath string) (string, error)
}
