package blockcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// phase tracks the lifecycle of one direction of a Session.
type phase byte

const (
	phaseIdle phase = iota
	phaseActive
	phaseFinished
)

// halfSession is one direction (encryption or decryption) of a Session.
// The cipher context is allocated on the first update and released exactly
// once when the direction finishes, on success and on failure alike.
type halfSession struct {
	phase     phase
	block     cipher.Block
	blockMode cipher.BlockMode // CBC
	stream    cipher.Stream    // CFB, OFB, CTR
	carry     []byte           // partial block held between updates
	out       []byte           // output accumulated since the first update
}

// release drops the cipher context and all buffered state and moves the
// direction to its terminal phase.
func (h *halfSession) release() {
	h.block = nil
	h.blockMode = nil
	h.stream = nil
	h.carry = nil
	h.out = nil
	h.phase = phaseFinished
}

// Session binds a key, an IV and a mode to a pair of independent
// encryption/decryption state machines. Each direction runs
// Idle -> Active (first update) -> Finished (finish) and may be used for
// exactly one message; construct a fresh Session per message.
//
// A Session performs no internal locking. The two directions may be driven
// from different goroutines only with external synchronization, and calls
// within one direction must be strictly sequential.
//
// The Session never enforces (key, IV) uniqueness. For the stream-cipher
// style modes (CFB, OFB, CTR) reusing an IV under the same key breaks
// confidentiality; callers must supply a fresh IV per encryption.
type Session struct {
	key       []byte
	iv        []byte
	mode      Mode
	primitive Primitive
	enc       halfSession
	dec       halfSession
}

// New validates the key length, resolves the concrete AES primitive and
// returns a session. No cipher context is allocated yet; contexts are
// created lazily on the first update of each direction.
//
// The IV must be exactly 16 bytes. Its length is a documented precondition
// rather than a constructor check: a wrong length surfaces as ErrInit on
// first use.
func New(key, iv []byte, mode Mode) (*Session, error) {
	primitive, err := Resolve(len(key), mode)
	if err != nil {
		return nil, err
	}

	return &Session{
		key:       append([]byte(nil), key...),
		iv:        append([]byte(nil), iv...),
		mode:      mode,
		primitive: primitive,
	}, nil
}

// Primitive returns the concrete AES transform resolved at construction.
func (s *Session) Primitive() Primitive {
	return s.primitive
}

// Mode returns the mode of operation the session was constructed with.
func (s *Session) Mode() Mode {
	return s.mode
}

// init allocates the cipher context for one direction.
func (s *Session) init(h *halfSession, encrypt bool) error {
	if len(s.iv) != aes.BlockSize {
		return fmt.Errorf("%w: IV must be %d bytes, got %d", ErrInit, aes.BlockSize, len(s.iv))
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInit, err)
	}

	h.block = block

	switch s.mode {
	case ModeCBC:
		if encrypt {
			h.blockMode = cipher.NewCBCEncrypter(block, s.iv)
		} else {
			h.blockMode = cipher.NewCBCDecrypter(block, s.iv)
		}
	case ModeECB:
		// ECB chains nothing; the raw block cipher is applied per block.
	case ModeCFB:
		if encrypt {
			h.stream = cipher.NewCFBEncrypter(block, s.iv)
		} else {
			h.stream = cipher.NewCFBDecrypter(block, s.iv)
		}
	case ModeOFB:
		h.stream = cipher.NewOFB(block, s.iv)
	case ModeCTR:
		h.stream = cipher.NewCTR(block, s.iv)
	}

	h.phase = phaseActive

	return nil
}

// cryptBlocks transforms block-aligned src into dst for the block modes.
func (s *Session) cryptBlocks(h *halfSession, dst, src []byte, encrypt bool) {
	if s.mode == ModeCBC {
		h.blockMode.CryptBlocks(dst, src)

		return
	}

	for i := 0; i < len(src); i += aes.BlockSize {
		if encrypt {
			h.block.Encrypt(dst[i:i+aes.BlockSize], src[i:i+aes.BlockSize])
		} else {
			h.block.Decrypt(dst[i:i+aes.BlockSize], src[i:i+aes.BlockSize])
		}
	}
}

// EncryptUpdate feeds a chunk of plaintext into the encryption direction.
// The first call initializes the encryption context. Block modes encrypt
// every complete block and carry the remaining 0..15 bytes to the next call;
// streaming modes produce ciphertext byte-for-byte.
func (s *Session) EncryptUpdate(chunk []byte) error {
	h := &s.enc

	switch h.phase {
	case phaseIdle:
		if err := s.init(h, true); err != nil {
			h.release()

			return err
		}
	case phaseFinished:
		return fmt.Errorf("%w: encryption already finished", ErrUpdate)
	case phaseActive:
	}

	if s.mode.Streaming() {
		out := make([]byte, len(chunk))
		h.stream.XORKeyStream(out, chunk)
		h.out = append(h.out, out...)

		return nil
	}

	h.carry = append(h.carry, chunk...)

	if full := len(h.carry) / aes.BlockSize * aes.BlockSize; full > 0 {
		out := make([]byte, full)
		s.cryptBlocks(h, out, h.carry[:full], true)
		h.out = append(h.out, out...)
		h.carry = append(h.carry[:0], h.carry[full:]...)
	}

	return nil
}

// EncryptFinish pads and encrypts the final block (block modes), releases
// the encryption context and returns all ciphertext accumulated since the
// first update. The direction cannot be used again afterwards.
func (s *Session) EncryptFinish() ([]byte, error) {
	h := &s.enc

	switch h.phase {
	case phaseIdle:
		return nil, fmt.Errorf("%w: encryption not started", ErrFinish)
	case phaseFinished:
		return nil, fmt.Errorf("%w: encryption already finished", ErrFinish)
	case phaseActive:
	}

	defer h.release()

	if !s.mode.Streaming() {
		padded := pkcs7Pad(h.carry, aes.BlockSize)
		out := make([]byte, len(padded))
		s.cryptBlocks(h, out, padded, true)
		h.out = append(h.out, out...)
	}

	return h.out, nil
}

// DecryptUpdate feeds a chunk of ciphertext into the decryption direction.
// The first call initializes the decryption context. Block modes hold the
// trailing block back: its padding can only be resolved at finish time.
func (s *Session) DecryptUpdate(chunk []byte) error {
	h := &s.dec

	switch h.phase {
	case phaseIdle:
		if err := s.init(h, false); err != nil {
			h.release()

			return err
		}
	case phaseFinished:
		return fmt.Errorf("%w: decryption already finished", ErrUpdate)
	case phaseActive:
	}

	if s.mode.Streaming() {
		out := make([]byte, len(chunk))
		h.stream.XORKeyStream(out, chunk)
		h.out = append(h.out, out...)

		return nil
	}

	h.carry = append(h.carry, chunk...)

	// Decrypt complete blocks but always keep at least one full block
	// buffered for padding removal.
	if len(h.carry) > aes.BlockSize {
		full := (len(h.carry) - aes.BlockSize) / aes.BlockSize * aes.BlockSize
		if full > 0 {
			out := make([]byte, full)
			s.cryptBlocks(h, out, h.carry[:full], false)
			h.out = append(h.out, out...)
			h.carry = append(h.carry[:0], h.carry[full:]...)
		}
	}

	return nil
}

// DecryptFinish decrypts the held-back final block, strips its padding
// (block modes), releases the decryption context and returns all plaintext
// accumulated since the first update. The final output length is only known
// here, once the padding has been removed.
func (s *Session) DecryptFinish() ([]byte, error) {
	h := &s.dec

	switch h.phase {
	case phaseIdle:
		return nil, fmt.Errorf("%w: decryption not started", ErrFinish)
	case phaseFinished:
		return nil, fmt.Errorf("%w: decryption already finished", ErrFinish)
	case phaseActive:
	}

	defer h.release()

	if s.mode.Streaming() {
		return h.out, nil
	}

	if len(h.carry) != aes.BlockSize {
		return nil, fmt.Errorf("%w: %v", ErrFinish, ErrInvalidBlockSize)
	}

	last := make([]byte, aes.BlockSize)
	s.cryptBlocks(h, last, h.carry, false)

	unpadded, err := pkcs7Unpad(last)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFinish, err)
	}

	h.out = append(h.out, unpadded...)

	return h.out, nil
}

// Encrypt runs a full update/finish cycle over data and returns the
// ciphertext. The encryption direction is consumed: a second call on the
// same session fails, so run a fresh session per message.
func (s *Session) Encrypt(data []byte) ([]byte, error) {
	if err := s.EncryptUpdate(data); err != nil {
		return nil, fmt.Errorf("%w: encryption failed: %v", ErrProcess, err)
	}

	out, err := s.EncryptFinish()
	if err != nil {
		return nil, fmt.Errorf("%w: encryption failed: %v", ErrProcess, err)
	}

	return out, nil
}

// Decrypt runs a full update/finish cycle over data and returns the
// plaintext. The decryption direction is consumed: a second call on the
// same session fails, so run a fresh session per message.
func (s *Session) Decrypt(data []byte) ([]byte, error) {
	if err := s.DecryptUpdate(data); err != nil {
		return nil, fmt.Errorf("%w: decryption failed: %v", ErrProcess, err)
	}

	out, err := s.DecryptFinish()
	if err != nil {
		return nil, fmt.Errorf("%w: decryption failed: %v", ErrProcess, err)
	}

	return out, nil
}
