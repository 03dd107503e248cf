package ocr

import "testing"

func TestTextPayload(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text passthrough", "RAW OCR OUTPUT", "RAW OCR OUTPUT"},
		{"text key", `{"text": "hello"}`, "hello"},
		{"alternate key", `{"ocr_text": "hello"}`, "hello"},
		{"result key", `{"result": "hello"}`, "hello"},
		{"key priority", `{"result": "second", "text": "first"}`, "first"},
		{"non-string value stringified", `{"pred": 42}`, "42"},
		{"object without known key", `{"score": 0.9}`, `{"score": 0.9}`},
		{"malformed json passthrough", `{"text": `, `{"text":`},
		{"whitespace only", "   \n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textPayload(tt.in); got != tt.want {
				t.Fatalf("textPayload(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHFPayload(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object with text key", `{"text": "hello"}`, "hello"},
		{"bare json string", `"hello"`, "hello"},
		{"generated_text list", `[{"text": "line one"}, {"text": "line two"}]`, "line one\nline two"},
		{"non-json passthrough", "plain response", "plain response"},
		{"unknown shape reserialized", `[1, 2]`, "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hfPayload([]byte(tt.in)); got != tt.want {
				t.Fatalf("hfPayload(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
