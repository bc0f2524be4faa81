// Package blockcipher implements a streaming AES engine over the classic
// block cipher modes (CBC, ECB, CFB, OFB, CTR) for 128, 192 and 256 bit keys.
//
// A Session binds a key, an IV and a mode, and exposes one-shot
// Encrypt/Decrypt as well as an incremental update/finish protocol for
// feeding data in chunks. Encryption and decryption are independent
// sub-sessions of the same Session and may each be driven exactly once.
package blockcipher
