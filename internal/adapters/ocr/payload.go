package ocr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Key names, in priority order, under which inference backends commonly
// return their recognized text.
var textKeys = []string{"text", "ocr_text", "result", "pred", "output"}

// textPayload interprets provider output, structured form first: a JSON
// object carrying one of the known text keys yields that value. Anything
// else — malformed JSON, an unexpected shape, a missing key — falls back to
// the raw output rather than failing.
func textPayload(out string) string {
	out = strings.TrimSpace(out)
	if out == "" {
		return ""
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return out
	}

	for _, key := range textKeys {
		v, ok := parsed[key]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}

	return out
}
