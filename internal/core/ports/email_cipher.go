package ports

// EmailCipher seals contact addresses before they are persisted.
// Implementations must be safe for concurrent use.
type EmailCipher interface {
	// Encrypt returns the envelope of plaintext.
	// Failures are EncryptionError.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens an envelope produced by Encrypt.
	// Failures are DecryptionError.
	Decrypt(envelope string) (string, error)
}
