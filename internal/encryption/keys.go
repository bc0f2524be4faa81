package encryption

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/idelchi/gocipher/internal/config"
)

const derivedKeyLen = 32

// resolveKey produces the session key from the configuration: a hex-encoded
// key string, a key file holding a hex-encoded key, or a key derived from a
// passphrase. Exactly one source is set; config validation enforces that.
func resolveKey(cfg *config.Config) ([]byte, error) {
	switch {
	case cfg.Key != "":
		key, err := hex.DecodeString(cfg.Key)
		if err != nil {
			return nil, fmt.Errorf("decoding key: %w", err)
		}

		return key, nil

	case cfg.KeyFile != "":
		data, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		key, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("decoding key file contents: %w", err)
		}

		return key, nil

	default:
		return deriveKey(cfg.Passphrase)
	}
}

// deriveKey stretches a passphrase into an AES-256 key with HKDF-SHA256.
// The derivation is deterministic so the same passphrase decrypts what it
// encrypted.
func deriveKey(passphrase string) ([]byte, error) {
	hkdfReader := hkdf.New(sha256.New, []byte(passphrase), nil, []byte("gocipher/passphrase"))
	key := make([]byte, derivedKeyLen)

	if _, err := io.ReadFull(hkdfReader, key); err != nil {
		return nil, fmt.Errorf("deriving key from passphrase: %w", err)
	}

	return key, nil
}
