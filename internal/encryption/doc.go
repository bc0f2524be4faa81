// Package encryption processes files through the blockcipher engine.
// Features concurrent processing, streaming for large files, and atomic
// output writes. Keys are 16, 24 or 32 bytes, given as hex, read from a
// file, or derived from a passphrase.
package encryption
