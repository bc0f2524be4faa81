package encryption

import (
	"errors"
	"testing"

	"github.com/idelchi/gocipher/pkg/blockcipher"
)

func TestEnvelopeHeaderRoundTrip(t *testing.T) {
	modes := []blockcipher.Mode{
		blockcipher.ModeCBC,
		blockcipher.ModeECB,
		blockcipher.ModeCFB,
		blockcipher.ModeOFB,
		blockcipher.ModeCTR,
	}

	for _, mode := range modes {
		for _, exec := range []bool{false, true} {
			header := newEnvelopeHeader(mode, exec)

			if len(header) != envelopeHeaderSize {
				t.Fatalf("header length = %d, want %d", len(header), envelopeHeaderSize)
			}

			gotMode, gotExec, err := parseEnvelopeHeader(header)
			if err != nil {
				t.Fatalf("parseEnvelopeHeader(%s, exec=%v): %v", mode, exec, err)
			}

			if gotMode != mode || gotExec != exec {
				t.Errorf("parsed (%s, %v), want (%s, %v)", gotMode, gotExec, mode, exec)
			}
		}
	}
}

func TestParseEnvelopeHeaderErrors(t *testing.T) {
	valid := newEnvelopeHeader(blockcipher.ModeCBC, false)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"too short", func(h []byte) []byte { return h[:3] }},
		{"bad magic", func(h []byte) []byte { h[0] = 'X'; return h }},
		{"bad version", func(h []byte) []byte { h[len(envelopeMagic)] = 99; return h }},
		{"bad mode", func(h []byte) []byte { h[len(envelopeMagic)+2] = 42; return h }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.mutate(append([]byte(nil), valid...))

			if _, _, err := parseEnvelopeHeader(header); !errors.Is(err, ErrProcessing) {
				t.Errorf("parseEnvelopeHeader = %v, want ErrProcessing", err)
			}
		})
	}
}
