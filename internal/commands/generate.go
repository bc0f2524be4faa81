package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tink-crypto/tink-go/v2/subtle/random"
)

// NewGenerateCommand creates a new cobra command for generating key material.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a new encryption key",
		RunE: func(_ *cobra.Command, _ []string) error {
			size := viper.GetUint32("size")

			switch size {
			case 16, 24, 32:
			default:
				return fmt.Errorf("key size must be 16, 24 or 32 bytes, got %d", size)
			}

			fmt.Println(hex.EncodeToString(random.GetRandomBytes(size))) //nolint:forbidigo

			return nil
		},
	}

	cmd.Flags().Uint32P("size", "s", 32, "Key size in bytes: 16, 24 or 32")

	return cmd
}
