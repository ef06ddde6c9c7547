// Package envelope seals single personal-data fields (contact emails) for
// storage. An envelope is the text "<ivHex>:<ciphertextHex>" produced by
// AES-256-GCM under a process-wide key with a fresh random IV per call.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"buffet/internal/pkg/errs"
)

const (
	// KeySize is the required key length in bytes (AES-256).
	KeySize = 32
	// IVSize is the GCM nonce length in bytes.
	IVSize = 12

	separator = ":"
)

var (
	ErrKeySize        = fmt.Errorf("key must be exactly %d bytes", KeySize)
	ErrMalformed      = errors.New("envelope must have the form ivHex:ciphertextHex")
	ErrIVSize         = fmt.Errorf("iv must be exactly %d bytes", IVSize)
	ErrCodecNotReady  = errors.New("codec is not configured")
	ErrEmptyPlaintext = errors.New("plaintext is empty")
)

// Codec encrypts and decrypts envelopes. It is safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
	rand io.Reader
}

// NewCodec builds a codec from a raw 32-byte key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, errs.NewEncryptionError(ErrKeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errs.NewEncryptionError(fmt.Errorf("new cipher: %w", err))
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errs.NewEncryptionError(fmt.Errorf("new gcm: %w", err))
	}
	return &Codec{aead: aead, rand: rand.Reader}, nil
}

// ParseKey decodes a hex encoded key and checks its length.
func ParseKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, errs.NewEncryptionError(fmt.Errorf("decode key: %w", err))
	}
	if len(key) != KeySize {
		return nil, errs.NewEncryptionError(ErrKeySize)
	}
	return key, nil
}

// NewCodecFromHex is ParseKey followed by NewCodec.
func NewCodecFromHex(hexKey string) (*Codec, error) {
	key, err := ParseKey(hexKey)
	if err != nil {
		return nil, err
	}
	return NewCodec(key)
}

// Encrypt seals plaintext and returns hex(iv) + ":" + hex(ciphertext).
func (c *Codec) Encrypt(plaintext string) (string, error) {
	if c == nil || c.aead == nil {
		return "", errs.NewEncryptionError(ErrCodecNotReady)
	}
	if plaintext == "" {
		return "", errs.NewEncryptionError(ErrEmptyPlaintext)
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return "", errs.NewEncryptionError(fmt.Errorf("read iv: %w", err))
	}

	ciphertext := c.aead.Seal(nil, iv, []byte(plaintext), nil)
	return hex.EncodeToString(iv) + separator + hex.EncodeToString(ciphertext), nil
}

// Decrypt opens an envelope produced by Encrypt. The envelope is split on the
// first separator only.
func (c *Codec) Decrypt(envelope string) (string, error) {
	if c == nil || c.aead == nil {
		return "", errs.NewDecryptionError(ErrCodecNotReady)
	}

	ivHex, ciphertextHex, ok := strings.Cut(envelope, separator)
	if !ok || ivHex == "" || ciphertextHex == "" {
		return "", errs.NewDecryptionError(ErrMalformed)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", errs.NewDecryptionError(fmt.Errorf("decode iv: %w", err))
	}
	if len(iv) != IVSize {
		return "", errs.NewDecryptionError(ErrIVSize)
	}

	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", errs.NewDecryptionError(fmt.Errorf("decode ciphertext: %w", err))
	}

	plaintext, err := c.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", errs.NewDecryptionError(fmt.Errorf("open: %w", err))
	}
	return string(plaintext), nil
}
