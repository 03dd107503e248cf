package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"parcel-intake-service/internal/platform/obs"
)

// HFProvider posts raw image bytes to the Hugging Face inference API for a
// hosted OCR model. Requires both a model repo and a bearer token.
//
// A non-2xx response or transport error marks the provider unavailable for
// this image; the chain moves on without retrying.
type HFProvider struct {
	Model   string
	Token   string
	BaseURL string
	Client  *http.Client
}

func NewHFProvider(model, token string) *HFProvider {
	return &HFProvider{
		Model:   strings.TrimSpace(model),
		Token:   strings.TrimSpace(token),
		BaseURL: "https://api-inference.huggingface.co",
		Client:  &http.Client{},
	}
}

func (p *HFProvider) Name() string { return "huggingface" }

func (p *HFProvider) Configured() bool { return p.Model != "" && p.Token != "" }

func (p *HFProvider) TryExtract(ctx context.Context, imagePath string) (_ string, err error) {
	defer obs.Time(ctx, "ocr.hf.TryExtract")(&err)

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("ocr hf: read image %q: %w", imagePath, err)
	}

	url := p.BaseURL + "/models/" + p.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("ocr hf: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.Token)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr hf: execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ocr hf: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		detail := strings.TrimSpace(string(body))
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return "", fmt.Errorf("ocr hf: status %d: %s", resp.StatusCode, detail)
	}

	return hfPayload(body), nil
}

// hfPayload copes with the shapes the inference endpoint is known to return:
// an object with a text key, a bare string, or a list of {"text": ...} parts.
// Anything else comes back re-serialized so the caller still sees text.
func hfPayload(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return strings.TrimSpace(string(body))
	}

	switch t := v.(type) {
	case map[string]any:
		for _, key := range textKeys {
			if val, ok := t[key]; ok {
				if s, ok := val.(string); ok {
					return s
				}
				return fmt.Sprint(val)
			}
		}
	case string:
		return t
	case []any:
		texts := make([]string, 0, len(t))
		for _, part := range t {
			if m, ok := part.(map[string]any); ok {
				if s, ok := m["text"].(string); ok {
					texts = append(texts, s)
				}
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
	}

	out, err := json.Marshal(v)
	if err != nil {
		return strings.TrimSpace(string(body))
	}
	return string(out)
}
