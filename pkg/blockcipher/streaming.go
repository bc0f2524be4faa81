package blockcipher

// StreamingEncryptor is a view of a Session restricted to the encryption
// path, for feeding data incrementally (e.g. from a file) without exposing
// the full session surface.
type StreamingEncryptor struct {
	session *Session
}

// StreamingEncryptor returns the encryption-path view of the session.
func (s *Session) StreamingEncryptor() *StreamingEncryptor {
	return &StreamingEncryptor{session: s}
}

// Update feeds a chunk of plaintext into the wrapped session.
func (e *StreamingEncryptor) Update(chunk []byte) error {
	return e.session.EncryptUpdate(chunk)
}

// Finish flushes the final block and returns the complete ciphertext.
func (e *StreamingEncryptor) Finish() ([]byte, error) {
	return e.session.EncryptFinish()
}

// StreamingDecryptor is the decryption-path counterpart of StreamingEncryptor.
type StreamingDecryptor struct {
	session *Session
}

// StreamingDecryptor returns the decryption-path view of the session.
func (s *Session) StreamingDecryptor() *StreamingDecryptor {
	return &StreamingDecryptor{session: s}
}

// Update feeds a chunk of ciphertext into the wrapped session.
func (d *StreamingDecryptor) Update(chunk []byte) error {
	return d.session.DecryptUpdate(chunk)
}

// Finish strips the final padding and returns the complete plaintext.
func (d *StreamingDecryptor) Finish() ([]byte, error) {
	return d.session.DecryptFinish()
}
