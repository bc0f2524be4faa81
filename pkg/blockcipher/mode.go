package blockcipher

import "fmt"

// Mode selects the block cipher mode of operation.
type Mode byte

const (
	// ModeCBC is Cipher Block Chaining.
	ModeCBC Mode = iota
	// ModeECB is Electronic Codebook.
	ModeECB
	// ModeCFB is Cipher Feedback.
	ModeCFB
	// ModeOFB is Output Feedback.
	ModeOFB
	// ModeCTR is Counter.
	ModeCTR
)

var modeNames = map[Mode]string{
	ModeCBC: "cbc",
	ModeECB: "ecb",
	ModeCFB: "cfb",
	ModeOFB: "ofb",
	ModeCTR: "ctr",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}

	return fmt.Sprintf("mode(%d)", byte(m))
}

// Valid reports whether m is one of the five supported modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]

	return ok
}

// Streaming reports whether m is a stream-cipher style mode.
// Streaming modes produce output byte-for-byte and use no padding;
// block modes (CBC, ECB) pad the final block.
func (m Mode) Streaming() bool {
	return m == ModeCFB || m == ModeOFB || m == ModeCTR
}

// ParseMode maps a lowercase mode name ("cbc", "ecb", "cfb", "ofb", "ctr")
// to its Mode value.
func ParseMode(name string) (Mode, error) {
	for mode, n := range modeNames {
		if n == name {
			return mode, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}
