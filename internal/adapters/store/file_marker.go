package store

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// FileMarker keeps the last-processed day as a single line on disk.
type FileMarker struct {
	Path string
}

func (m *FileMarker) Load(ctx context.Context) (string, error) {
	b, err := os.ReadFile(m.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("day marker: read %q: %w", m.Path, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (m *FileMarker) Store(ctx context.Context, date string) error {
	if err := os.WriteFile(m.Path, []byte(date+"\n"), 0o644); err != nil {
		return fmt.Errorf("day marker: write %q: %w", m.Path, err)
	}
	return nil
}
