package blockcipher_test

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/gocipher/pkg/blockcipher"
)

// Vector is a single known-answer test case from a YAML golden file.
type Vector struct {
	Name       string `yaml:"name"`
	Mode       string `yaml:"mode"`
	Key        string `yaml:"key"`
	IV         string `yaml:"iv"`
	Plaintext  string `yaml:"plaintext"`
	Ciphertext string `yaml:"ciphertext"`
}

// VectorGroup is a named collection of test vectors.
type VectorGroup struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Cases       []Vector `yaml:"cases"`
}

func loadVectors(t *testing.T) []VectorGroup {
	t.Helper()

	files, err := filepath.Glob("testdata/*.yml")
	if err != nil {
		t.Fatalf("globbing testdata: %v", err)
	}

	if len(files) == 0 {
		t.Fatal("no testdata/*.yml files found")
	}

	var groups []VectorGroup

	for _, f := range files {
		data, err := os.ReadFile(f) //nolint:gosec // test helper reads known testdata files
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}

		var fileGroups []VectorGroup
		if err := yaml.Unmarshal(data, &fileGroups); err != nil {
			t.Fatalf("parsing %s: %v", f, err)
		}

		groups = append(groups, fileGroups...)
	}

	return groups
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decoding hex %q: %v", s, err)
	}

	return b
}

func TestKnownAnswerVectors(t *testing.T) {
	for _, group := range loadVectors(t) {
		for _, vector := range group.Cases {
			t.Run(group.Name+"/"+vector.Name, func(t *testing.T) {
				mode, err := blockcipher.ParseMode(vector.Mode)
				if err != nil {
					t.Fatalf("ParseMode: %v", err)
				}

				key := mustHex(t, vector.Key)
				iv := mustHex(t, vector.IV)
				plaintext := mustHex(t, vector.Plaintext)
				want := mustHex(t, vector.Ciphertext)

				session, err := blockcipher.New(key, iv, mode)
				if err != nil {
					t.Fatalf("New: %v", err)
				}

				got, err := session.Encrypt(plaintext)
				if err != nil {
					t.Fatalf("Encrypt: %v", err)
				}

				if mode.Streaming() {
					if !bytes.Equal(got, want) {
						t.Fatalf("ciphertext = %x, want %x", got, want)
					}
				} else {
					// Block modes append one PKCS#7 padding block beyond the vector.
					if len(got) != len(want)+aes.BlockSize {
						t.Fatalf("ciphertext length = %d, want %d", len(got), len(want)+aes.BlockSize)
					}

					if !bytes.Equal(got[:len(want)], want) {
						t.Fatalf("data blocks = %x, want %x", got[:len(want)], want)
					}
				}

				dec, err := blockcipher.New(key, iv, mode)
				if err != nil {
					t.Fatalf("New: %v", err)
				}

				back, err := dec.Decrypt(got)
				if err != nil {
					t.Fatalf("Decrypt: %v", err)
				}

				if !bytes.Equal(back, plaintext) {
					t.Fatalf("round-trip = %x, want %x", back, plaintext)
				}
			})
		}
	}
}
