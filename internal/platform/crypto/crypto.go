// Package crypto provides opaque encrypt/decrypt for field values at rest
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	perr "codenest/internal/platform/errors"
)

// Box seals and opens short string values with AES-256-GCM
// the stored form is base64(nonce || ciphertext)
type Box struct {
	aead cipher.AEAD
}

// New builds a Box from a base64-encoded 32-byte key
func New(key string) (*Box, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "crypto key is not base64")
	}
	if len(raw) != 32 {
		return nil, perr.InvalidArgf("crypto key must be 32 bytes, got %d", len(raw))
	}
	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "crypto cipher init failed")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "crypto gcm init failed")
	}
	return &Box{aead: aead}, nil
}

// Encrypt seals plain and returns the encoded stored form
func (b *Box) Encrypt(plain string) (string, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "crypto nonce failed")
	}
	sealed := b.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an encoded stored form produced by Encrypt
func (b *Box) Decrypt(enc string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "crypto value is not base64")
	}
	ns := b.aead.NonceSize()
	if len(raw) < ns {
		return "", perr.Internalf("crypto value too short")
	}
	plain, err := b.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "crypto open failed")
	}
	return string(plain), nil
}
