package encryption

import (
	"crypto/aes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tink-crypto/tink-go/v2/subtle/random"

	"github.com/idelchi/gocipher/internal/config"
	"github.com/idelchi/gocipher/internal/fileutil"
	"github.com/idelchi/gocipher/pkg/blockcipher"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key stores raw key bytes
	key []byte

	// mode is the cipher mode used for encryption; decryption reads the
	// mode from each file's envelope header
	mode blockcipher.Mode

	// iv holds a caller-fixed IV, or nil to generate a fresh IV per file
	iv []byte

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a new Processor with the given configuration.
// It resolves the key material and validates it against the configured mode
// by resolving the concrete cipher primitive up front.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	encryptionKey, err := resolveKey(cfg)
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	mode, err := blockcipher.ParseMode(cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("parsing mode: %w", err)
	}

	if _, err := blockcipher.Resolve(len(encryptionKey), mode); err != nil {
		return nil, fmt.Errorf("validating key: %w", err)
	}

	processor := &Processor{
		cfg:     cfg,
		key:     encryptionKey,
		mode:    mode,
		results: make(chan Result, len(cfg.Files)),
	}

	if cfg.IV != "" {
		iv, err := hex.DecodeString(cfg.IV)
		if err != nil {
			return nil, fmt.Errorf("decoding IV: %w", err)
		}

		if len(iv) != aes.BlockSize {
			return nil, fmt.Errorf("IV must be %d bytes, got %d", aes.BlockSize, len(iv))
		}

		processor.iv = iv
	}

	return processor, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files and the number of errors.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)
			} else {
				processed++

				totalSize += result.OutputSize

				if !p.cfg.Quiet {
					fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
				}
			}

			if p.cfg.Delete && result.Error == nil {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				}

				if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// encrypt reads data from reader, streams it through an encryption session,
// and writes the envelope, the IV and the ciphertext to writer. The isExec
// parameter preserves the executable bit information.
func (p *Processor) encrypt(reader io.Reader, writer io.Writer, isExec bool) error {
	header := newEnvelopeHeader(p.mode, isExec)
	if _, err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	iv := p.iv
	if iv == nil {
		iv = random.GetRandomBytes(aes.BlockSize)
	}

	if _, err := writer.Write(iv); err != nil {
		return fmt.Errorf("writing IV: %w", err)
	}

	session, err := blockcipher.New(p.key, iv, p.mode)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	encryptor := session.StreamingEncryptor()

	if err := feed(reader, encryptor.Update); err != nil {
		return err
	}

	ciphertext, err := encryptor.Finish()
	if err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}

	if _, err := writer.Write(ciphertext); err != nil {
		return fmt.Errorf("writing ciphertext: %w", err)
	}

	return nil
}

// decrypt reads encrypted data from reader, decrypts it using the mode
// specified in the envelope header, and writes the result to writer.
// It returns whether the original file was executable.
func (p *Processor) decrypt(reader io.Reader, writer io.Writer) (bool, error) {
	header := make([]byte, envelopeHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return false, fmt.Errorf("reading header: %w", err)
	}

	mode, exec, err := parseEnvelopeHeader(header)
	if err != nil {
		return false, err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(reader, iv); err != nil {
		return false, fmt.Errorf("reading IV: %w", err)
	}

	session, err := blockcipher.New(p.key, iv, mode)
	if err != nil {
		return false, fmt.Errorf("creating session: %w", err)
	}

	decryptor := session.StreamingDecryptor()

	if err := feed(reader, decryptor.Update); err != nil {
		return false, err
	}

	plaintext, err := decryptor.Finish()
	if err != nil {
		return false, fmt.Errorf("finalizing decryption: %w", err)
	}

	if _, err := writer.Write(plaintext); err != nil {
		return false, fmt.Errorf("writing plaintext: %w", err)
	}

	return exec, nil
}

// feed reads reader in pooled chunks and passes each chunk to update.
func feed(reader io.Reader, update func([]byte) error) error {
	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return fmt.Errorf("%w: invalid buffer type from pool", ErrProcessing)
	}

	defer bufferPool.Put(buf) //nolint:staticcheck

	for {
		n, err := reader.Read(buf)
		if n > 0 {
			if err := update(buf[:n]); err != nil {
				return fmt.Errorf("updating cipher: %w", err)
			}
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

// processFile handles the encryption or decryption of a single file.
// It creates a temporary file for output and performs an atomic rename on completion.
//
//nolint:cyclop
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	const ownerReadWrite = 0o600

	execOut := tc.IsExec

	if p.cfg.Decrypt {
		execOut, err = p.decrypt(inFile, tc.TmpFile)
		if err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else {
		if err := p.encrypt(inFile, tc.TmpFile, tc.IsExec); err != nil {
			return 0, fmt.Errorf("encrypting file: %w", err)
		}
	}

	perm := os.FileMode(ownerReadWrite)

	if execOut {
		perm |= 0o111
	}

	if err := os.Chmod(tc.TmpName, perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	if err := os.Rename(tc.TmpName, outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.EncryptSuffix

	if p.cfg.Decrypt {
		filename = strings.TrimSuffix(filename, p.cfg.EncryptSuffix)
		ext = p.cfg.DecryptSuffix
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
