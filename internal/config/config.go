package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds the runtime configuration, bound from flags and environment
// variables.
type Config struct {
	// Key material: exactly one of these must be set
	Key        string `validate:"omitempty,hexadecimal"` // hex encoded, 16/24/32 bytes
	KeyFile    string `mapstructure:"key-file"`
	Passphrase string

	// IV is optional; when empty a fresh random IV is generated per file.
	// A fixed IV must never be reused across encryptions in cfb/ofb/ctr mode.
	IV string `mapstructure:"iv" validate:"omitempty,hexadecimal,len=32"` // hex encoded, 16 bytes

	// Mode selects the block cipher mode of operation
	Mode string `validate:"oneof=cbc ecb cfb ofb ctr"`

	// Common flags
	Parallel           int    `validate:"min=1"`
	Quiet              bool
	Delete             bool
	Dry                bool
	Stats              bool
	PreserveTimestamps bool   `mapstructure:"preserve-timestamps"`
	EncryptSuffix      string `mapstructure:"encrypt-ext"`
	DecryptSuffix      string `mapstructure:"decrypt-ext"`

	// Command-specific flags
	Decrypt bool

	// Positional arguments
	Files []string `validate:"min=1"`
}

// Validate validates the configuration against the struct tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	// Key sources are mutually exclusive and one is required
	sources := 0

	for _, source := range []string{c.Key, c.KeyFile, c.Passphrase} {
		if source != "" {
			sources++
		}
	}

	if sources != 1 {
		return errors.New("exactly one of --key, --key-file or --passphrase must be provided")
	}

	return nil
}
