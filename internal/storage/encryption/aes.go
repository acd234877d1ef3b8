// Package encryption provides AES-256-GCM encryption for sensitive data.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"runtime"

	"golang.org/x/crypto/argon2"
)

// ErrCiphertextTooShort is returned when a value is shorter than the GCM nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// KeyEnv names the environment variable that supplies key material.
const KeyEnv = "AUTHDASH_ENCRYPTION_KEY"

// Encryptor provides encryption/decryption for sensitive data
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// KDFParams holds the Argon2id parameters used to stretch key material.
type KDFParams struct {
	Memory      uint32 // KB
	Iterations  uint32
	Parallelism uint8
}

// DefaultKDFParams returns parameters sized for a one-off derivation per process start.
// Memory: 19MB, Iterations: 2, Parallelism: 1
func DefaultKDFParams() *KDFParams {
	return &KDFParams{
		Memory:      19 * 1024,
		Iterations:  2,
		Parallelism: 1,
	}
}

// AES implements AES-256-GCM encryption
type AES struct {
	key []byte
}

// New creates a new AES encryptor with a derived key
// Priority: AUTHDASH_ENCRYPTION_KEY env var > machine-derived key
func New() (*AES, error) {
	var keyMaterial string

	if envKey := os.Getenv(KeyEnv); envKey != "" {
		keyMaterial = envKey
	} else {
		keyMaterial = deriveMachineKey()
	}

	return NewWithKey(DeriveKey(keyMaterial, DefaultKDFParams()))
}

// NewWithKey creates an encryptor with a specific key (for testing)
func NewWithKey(key []byte) (*AES, error) {
	if len(key) != 32 {
		return nil, errors.New("key must be 32 bytes for AES-256")
	}
	return &AES{key: key}, nil
}

// DeriveKey stretches key material into a 256-bit key with Argon2id.
// The salt is fixed so the same material always yields the same key.
func DeriveKey(material string, params *KDFParams) []byte {
	if params == nil {
		params = DefaultKDFParams()
	}
	salt := sha256.Sum256([]byte("authdash-session-store"))
	return argon2.IDKey([]byte(material), salt[:16], params.Iterations, params.Memory, params.Parallelism, 32)
}

// Encrypt encrypts plaintext using AES-256-GCM
func (e *AES) Encrypt(plaintext string) (string, error) {
	gcm, err := e.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts ciphertext using AES-256-GCM
func (e *AES) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	gcm, err := e.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", ErrCiphertextTooShort
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

func (e *AES) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// deriveMachineKey creates a machine-specific key from available identifiers
func deriveMachineKey() string {
	material := "authdash-default-key"

	if hostname, err := os.Hostname(); err == nil {
		material += hostname
	}

	if home, err := os.UserHomeDir(); err == nil {
		material += home
	}

	material += runtime.GOOS + runtime.GOARCH

	return material
}
