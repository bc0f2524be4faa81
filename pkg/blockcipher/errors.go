package blockcipher

import "errors"

var (
	// ErrInvalidKey is returned when the key length is not 16, 24 or 32 bytes.
	ErrInvalidKey = errors.New("key must be 16, 24 or 32 bytes")
	// ErrUnknownMode is returned when a mode name cannot be parsed.
	ErrUnknownMode = errors.New("unknown cipher mode")
	// ErrInit is returned when the underlying cipher context cannot be initialized.
	ErrInit = errors.New("cipher initialization failed")
	// ErrUpdate is returned when a streaming update is invoked on a finished direction.
	ErrUpdate = errors.New("cipher update failed")
	// ErrFinish is returned when finalization fails, including finish before the
	// first update, finish called twice, or unresolvable padding.
	ErrFinish = errors.New("cipher finalization failed")
	// ErrProcess wraps any failure of the one-shot Encrypt/Decrypt operations.
	ErrProcess = errors.New("cipher processing failed")

	// ErrEmptyData is returned when attempting to unpad empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when ciphertext length is not aligned with the AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
)
