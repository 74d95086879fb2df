package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrInvalidSignature = errors.New("invalid payload signature")

// SignatureVerifier authenticates webhook payloads signed with a shared secret.
type SignatureVerifier interface {
	Verify(payload []byte, signature string) error
}

// HMACSignature checks hex encoded HMAC-SHA256 signatures.
type HMACSignature struct {
	secret []byte
}

// NewHMACSignature creates a verifier for secret.
func NewHMACSignature(secret string) *HMACSignature {
	return &HMACSignature{secret: []byte(secret)}
}

// Sign returns the hex signature of payload.
func (s *HMACSignature) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *HMACSignature) Verify(payload []byte, signature string) error {
	expected, err := hex.DecodeString(signature)
	if err != nil || len(s.secret) == 0 {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	if !hmac.Equal(mac.Sum(nil), expected) {
		return ErrInvalidSignature
	}
	return nil
}
