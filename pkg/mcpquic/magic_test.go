package mcpquic

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateMagicBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "MCP1", nil},
		{"valid with trailing data", "MCP1{\"jsonrpc\":\"2.0\"}\n", nil},
		{"wrong magic", "HTTP", ErrInvalidMagicBytes},
		{"lowercase", "mcp1", ErrInvalidMagicBytes},
	}

	for _, tt := range tests {
		err := ValidateMagicBytes(strings.NewReader(tt.input))
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: got error %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateMagicBytesShortRead(t *testing.T) {
	if err := ValidateMagicBytes(strings.NewReader("MC")); err == nil {
		t.Error("expected error on truncated magic bytes")
	}
}

func TestSendMagicBytesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := SendMagicBytes(&buf); err != nil {
		t.Fatalf("SendMagicBytes: %v", err)
	}
	if err := ValidateMagicBytes(&buf); err != nil {
		t.Errorf("round trip failed: %v", err)
	}
}
