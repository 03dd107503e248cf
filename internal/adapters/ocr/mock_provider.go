package ocr

import "context"

// MockProvider is a canned extraction backend for tests.
type MockProvider struct {
	ProviderName string
	Output       string
	Err          error
	Unconfigured bool

	Calls int
}

func (p *MockProvider) Name() string {
	if p.ProviderName == "" {
		return "mock"
	}
	return p.ProviderName
}

func (p *MockProvider) Configured() bool { return !p.Unconfigured }

func (p *MockProvider) TryExtract(ctx context.Context, imagePath string) (string, error) {
	p.Calls++
	if p.Err != nil {
		return "", p.Err
	}
	return p.Output, nil
}
