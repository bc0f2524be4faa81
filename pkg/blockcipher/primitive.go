package blockcipher

import "fmt"

// Primitive identifies one concrete AES transform: a key strength combined
// with a mode of operation. The string values follow OpenSSL naming.
type Primitive string

// The 15 supported primitives (3 key strengths x 5 modes).
const (
	AES128CBC Primitive = "aes-128-cbc"
	AES128ECB Primitive = "aes-128-ecb"
	AES128CFB Primitive = "aes-128-cfb"
	AES128OFB Primitive = "aes-128-ofb"
	AES128CTR Primitive = "aes-128-ctr"
	AES192CBC Primitive = "aes-192-cbc"
	AES192ECB Primitive = "aes-192-ecb"
	AES192CFB Primitive = "aes-192-cfb"
	AES192OFB Primitive = "aes-192-ofb"
	AES192CTR Primitive = "aes-192-ctr"
	AES256CBC Primitive = "aes-256-cbc"
	AES256ECB Primitive = "aes-256-ecb"
	AES256CFB Primitive = "aes-256-cfb"
	AES256OFB Primitive = "aes-256-ofb"
	AES256CTR Primitive = "aes-256-ctr"
)

// primitiveKey is the lookup tuple for the primitive table.
type primitiveKey struct {
	keySize int
	mode    Mode
}

//nolint:gochecknoglobals // static lookup table, populated once
var primitives = map[primitiveKey]Primitive{
	{16, ModeCBC}: AES128CBC,
	{16, ModeECB}: AES128ECB,
	{16, ModeCFB}: AES128CFB,
	{16, ModeOFB}: AES128OFB,
	{16, ModeCTR}: AES128CTR,
	{24, ModeCBC}: AES192CBC,
	{24, ModeECB}: AES192ECB,
	{24, ModeCFB}: AES192CFB,
	{24, ModeOFB}: AES192OFB,
	{24, ModeCTR}: AES192CTR,
	{32, ModeCBC}: AES256CBC,
	{32, ModeECB}: AES256ECB,
	{32, ModeCFB}: AES256CFB,
	{32, ModeOFB}: AES256OFB,
	{32, ModeCTR}: AES256CTR,
}

// Resolve maps a key length and a mode to the concrete AES primitive.
// Key lengths outside {16, 24, 32} fail with ErrInvalidKey before the mode
// is inspected. For a valid key length every supported mode has an entry in
// the table; a missing entry is a configuration bug, not a caller error.
func Resolve(keySize int, mode Mode) (Primitive, error) {
	switch keySize {
	case 16, 24, 32:
	default:
		return "", fmt.Errorf("%w: got %d bytes", ErrInvalidKey, keySize)
	}

	primitive, ok := primitives[primitiveKey{keySize: keySize, mode: mode}]
	if !ok {
		panic(fmt.Sprintf("blockcipher: no primitive for key size %d and mode %s", keySize, mode))
	}

	return primitive, nil
}
