package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/sift/pkg/ports"
	"github.com/aretw0/sift/pkg/schema"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.HistoryStore
	config EncryptionConfig
}

// envelopeKey marks an encrypted attempt payload in the stored Raw map.
const envelopeKey = "__encrypted__"

// payload is the sensitive part of an attempt: the user's input and the
// issues that echo pieces of it back.
type payload struct {
	Raw    map[string]any `json:"raw"`
	Issues schema.Issues  `json:"issues,omitempty"`
}

// NewEncryptionMiddleware creates a middleware that encrypts each attempt's
// input and issues with AES-GCM before storage. ID, schema name, outcome, and
// timestamp stay plain so sessions remain listable and monitorable.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.HistoryStore) ports.HistoryStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Append(ctx context.Context, sessionID string, attempt *ports.Attempt) error {
	plainText, err := json.Marshal(payload{Raw: attempt.Raw, Issues: attempt.Issues})
	if err != nil {
		return fmt.Errorf("failed to marshal attempt payload: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt attempt: %w", err)
	}

	envelope := *attempt
	envelope.Raw = map[string]any{
		envelopeKey: base64.StdEncoding.EncodeToString(ciphertext),
	}
	envelope.Issues = nil

	return m.next.Append(ctx, sessionID, &envelope)
}

func (m *encryptionMiddleware) List(ctx context.Context, sessionID string) ([]*ports.Attempt, error) {
	envelopes, err := m.next.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	attempts := make([]*ports.Attempt, len(envelopes))
	for i, env := range envelopes {
		opened, err := m.open(env)
		if err != nil {
			return nil, fmt.Errorf("attempt %s: %w", env.ID, err)
		}
		attempts[i] = opened
	}
	return attempts, nil
}

// open restores the plain attempt from its stored envelope.
func (m *encryptionMiddleware) open(env *ports.Attempt) (*ports.Attempt, error) {
	encryptedStr, ok := env.Raw[envelopeKey].(string)
	if !ok {
		// An attempt recorded before encryption was enabled has no envelope.
		// Fail secure rather than guessing at its provenance.
		return nil, errors.New("attempt is missing encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt attempt: %w", err)
	}

	var p payload
	if err := json.Unmarshal(plainText, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted payload: %w", err)
	}

	opened := *env
	opened.Raw = p.Raw
	opened.Issues = p.Issues
	return &opened, nil
}

func (m *encryptionMiddleware) Clear(ctx context.Context, sessionID string) error {
	return m.next.Clear(ctx, sessionID)
}

func (m *encryptionMiddleware) Sessions(ctx context.Context) ([]string, error) {
	return m.next.Sessions(ctx)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
