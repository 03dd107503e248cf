package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
)

// CLIProvider invokes an external OCR inference command with the image path
// appended, e.g. OCR_CMD="deepseek-infer --model /models/deepseek".
//
// Flag conventions vary between inference CLIs, so the same command is tried
// with a few argument shapes; the first run that exits zero with output wins.
type CLIProvider struct {
	// Command is the full base command line, split on whitespace.
	Command string
}

func (p *CLIProvider) Name() string { return "cli" }

func (p *CLIProvider) Configured() bool { return strings.TrimSpace(p.Command) != "" }

func (p *CLIProvider) TryExtract(ctx context.Context, imagePath string) (string, error) {
	base := strings.Fields(p.Command)
	if len(base) == 0 {
		return "", errors.New("ocr cli: empty command")
	}

	shapes := [][]string{
		append(slices.Clone(base), "--image", imagePath),
		append(slices.Clone(base), imagePath),
		append(slices.Clone(base), "-i", imagePath),
	}

	var lastErr error
	for _, args := range shapes {
		out, err := runCommand(ctx, args)
		if err != nil {
			lastErr = err
			// A missing binary fails identically for every shape.
			if errors.Is(err, exec.ErrNotFound) {
				break
			}
			continue
		}

		if text := textPayload(out); text != "" {
			return text, nil
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no output")
	}
	return "", fmt.Errorf("ocr cli: %w", lastErr)
}

// runCommand executes argv with stdout captured, folding a trimmed slice of
// stderr into the error for diagnosability.
func runCommand(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if len(detail) > 200 {
			detail = detail[:200]
		}
		if detail != "" {
			return "", fmt.Errorf("%w (stderr: %s)", err, detail)
		}
		return "", err
	}

	return stdout.String(), nil
}
