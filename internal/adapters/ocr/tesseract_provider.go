package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractProvider runs OCR in-process through the gosseract client.
//
// It participates in the chain only when a language is configured; the chain
// never substitutes it for an unconfigured remote backend on its own.
type TesseractProvider struct {
	Language string

	clientFactory func() *gosseract.Client
}

func NewTesseractProvider(language string) *TesseractProvider {
	return &TesseractProvider{Language: language, clientFactory: gosseract.NewClient}
}

func (p *TesseractProvider) Name() string { return "tesseract" }

func (p *TesseractProvider) Configured() bool { return p.Language != "" }

func (p *TesseractProvider) TryExtract(ctx context.Context, imagePath string) (string, error) {
	// gosseract has no context support; honor cancellation before the
	// blocking call at least.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := p.clientFactory()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("ocr tesseract: set image %q: %w", imagePath, err)
	}
	if err := client.SetLanguage(p.Language); err != nil {
		return "", fmt.Errorf("ocr tesseract: set language %q: %w", p.Language, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr tesseract: recognize: %w", err)
	}

	return text, nil
}
