package services

import (
	"context"
	"log"
	"strings"
	"time"

	"parcel-intake-service/internal/ports"
)

// Extractor runs an ordered chain of OCR providers against a stored image.
//
// Providers are attempted in the configured order; the first one producing
// non-empty text short-circuits the chain. Output from different providers is
// never mixed for the same image, and a failing provider is never retried in
// place. When every provider is unconfigured or fails, extraction degrades to
// an empty result and intake proceeds with blank fields.
type Extractor struct {
	Providers []ports.ExtractionProvider

	// Timeout bounds each individual provider attempt.
	Timeout time.Duration
}

func NewExtractor(providers []ports.ExtractionProvider, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Extractor{Providers: providers, Timeout: timeout}
}

// Extract returns the winning provider's raw text and its non-empty trimmed
// lines in original order. Both returns are empty when no provider delivered.
func (e *Extractor) Extract(ctx context.Context, imagePath string) (string, []string) {
	for _, p := range e.Providers {
		if !p.Configured() {
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, e.Timeout)
		out, err := p.TryExtract(attemptCtx, imagePath)
		cancel()

		if err != nil {
			log.Printf("extract provider=%s path=%s err=%v", p.Name(), imagePath, err)
			continue
		}

		out = strings.TrimSpace(out)
		if out == "" {
			continue
		}

		log.Printf("extract provider=%s path=%s bytes=%d", p.Name(), imagePath, len(out))
		return out, SplitLines(out)
	}

	log.Printf("extract: no configured provider produced output path=%s", imagePath)
	return "", nil
}

// SplitLines breaks raw OCR output into trimmed non-empty lines, preserving
// their original order.
func SplitLines(raw string) []string {
	split := strings.Split(raw, "\n")
	lines := make([]string, 0, len(split))
	for _, l := range split {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
