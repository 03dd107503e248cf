package ocr

import (
	"context"
	"fmt"
	"strings"
)

// ScriptProvider runs a local inference script through an interpreter,
// e.g. OCR_SCRIPT="DeepSeek-OCR/infer.py".
type ScriptProvider struct {
	ScriptPath string

	// Interpreter defaults to "python".
	Interpreter string
}

func (p *ScriptProvider) Name() string { return "script" }

func (p *ScriptProvider) Configured() bool { return strings.TrimSpace(p.ScriptPath) != "" }

func (p *ScriptProvider) TryExtract(ctx context.Context, imagePath string) (string, error) {
	interp := p.Interpreter
	if interp == "" {
		interp = "python"
	}

	out, err := runCommand(ctx, []string{interp, p.ScriptPath, "--image", imagePath})
	if err != nil {
		// Retry once with a positional argument before giving up on the
		// script entirely.
		out, err = runCommand(ctx, []string{interp, p.ScriptPath, imagePath})
		if err != nil {
			return "", fmt.Errorf("ocr script: %w", err)
		}
	}

	return textPayload(out), nil
}
