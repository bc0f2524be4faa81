package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "gocipher [flags] command [flags]"
	root.Short = "File encryption utility"
	root.Long = `A file encryption utility built on AES with selectable block cipher modes
(cbc, ecb, cfb, ofb, ctr). Provides commands for key generation, encryption,
and decryption.`

	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	root.PersistentFlags().Bool("dry", false, "Preview which files would be processed without processing them")
	root.PersistentFlags().Bool("stats", false, "Print processing statistics")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Carry the input file's timestamps over to the output file")

	root.PersistentFlags().StringP("key", "k", "", "Encryption key (16, 24 or 32 bytes, hex-encoded)")
	root.PersistentFlags().
		StringP("key-file", "f", "", "Path to the key file with the encryption key (16, 24 or 32 bytes, hex-encoded)")
	root.PersistentFlags().StringP("passphrase", "p", "", "Passphrase to derive a 32-byte key from")
	root.PersistentFlags().StringP("mode", "m", "cbc", "Block cipher mode: cbc, ecb, cfb, ofb or ctr")
	root.PersistentFlags().
		String("iv", "", "Fixed IV (16 bytes, hex-encoded); default is a fresh random IV per file")

	root.PersistentFlags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	root.PersistentFlags().String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}

		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		return nil
	}

	root.AddCommand(NewEncryptCommand(), NewDecryptCommand(), NewGenerateCommand())

	return root
}
