package navigation

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
)

// Codec turns a link payload into an opaque URL-safe token and back.
type Codec interface {
	Encode(plainText string) (string, error)
	Decode(token string) (string, error)
}

func encodeToken(payload []byte) string {
	return base64.RawURLEncoding.EncodeToString(payload)
}

func decodeToken(token string) ([]byte, error) {
	payload, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.Wrap(err, "invalid navigation token")
	}
	return payload, nil
}

// Base64 only obfuscates the payload.
type Base64 struct{}

func (Base64) Encode(plainText string) (string, error) {
	return encodeToken([]byte(plainText)), nil
}

func (Base64) Decode(token string) (string, error) {
	payload, err := decodeToken(token)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// GCM seals the payload so that report viewers cannot forge navigation values.
// The token carries the random nonce followed by the sealed link.
type GCM struct {
	aead cipher.AEAD
}

// NewGCM creates a GCM codec from an AES key of 16, 24 or 32 bytes.
func NewGCM(key []byte) (*GCM, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "navigation key")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "navigation key")
	}
	return &GCM{aead: aead}, nil
}

func (g *GCM) Encode(plainText string) (string, error) {
	nonce := make([]byte, g.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "navigation nonce")
	}
	return encodeToken(g.aead.Seal(nonce, nonce, []byte(plainText), nil)), nil
}

func (g *GCM) Decode(token string) (string, error) {
	payload, err := decodeToken(token)
	if err != nil {
		return "", err
	}
	n := g.aead.NonceSize()
	if len(payload) < n+g.aead.Overhead() {
		return "", errors.New("navigation token too short")
	}
	plainText, err := g.aead.Open(nil, payload[:n], payload[n:], nil)
	if err != nil {
		return "", errors.Wrap(err, "navigation token was not sealed with this key")
	}
	return string(plainText), nil
}
