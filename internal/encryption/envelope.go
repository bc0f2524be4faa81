package encryption

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/idelchi/gocipher/pkg/blockcipher"
)

const (
	envelopeMagic   = "GOCI"
	envelopeVersion = byte(1)

	envelopeFlagExec = 0x01
)

const envelopeHeaderSize = len(envelopeMagic) + 3

// ErrProcessing indicates an error during envelope processing.
var ErrProcessing = errors.New("envelope processing error")

// newEnvelopeHeader builds the file header: magic, version, flags and the
// mode byte. The per-file IV follows the header on disk.
func newEnvelopeHeader(mode blockcipher.Mode, executable bool) []byte {
	header := make([]byte, envelopeHeaderSize)
	copy(header, []byte(envelopeMagic))

	header[len(envelopeMagic)] = envelopeVersion

	var flags byte

	if executable {
		flags |= envelopeFlagExec
	}

	header[len(envelopeMagic)+1] = flags
	header[len(envelopeMagic)+2] = byte(mode)

	return header
}

// parseEnvelopeHeader validates the header and returns the mode the file was
// encrypted with and whether the original file was executable.
func parseEnvelopeHeader(header []byte) (blockcipher.Mode, bool, error) {
	if len(header) != envelopeHeaderSize {
		return 0, false, fmt.Errorf("%w: envelope header too short", ErrProcessing)
	}

	if !bytes.Equal(header[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return 0, false, fmt.Errorf("%w: invalid envelope magic", ErrProcessing)
	}

	version := header[len(envelopeMagic)]
	if version != envelopeVersion {
		return 0, false, fmt.Errorf("%w: unsupported envelope version %d", ErrProcessing, version)
	}

	flags := header[len(envelopeMagic)+1]

	mode := blockcipher.Mode(header[len(envelopeMagic)+2])
	if !mode.Valid() {
		return 0, false, fmt.Errorf("%w: unsupported cipher mode %d", ErrProcessing, byte(mode))
	}

	executable := flags&envelopeFlagExec != 0

	return mode, executable, nil
}
