package auth

import (
	"errors"
	"testing"
)

func TestHMACSignature(t *testing.T) {
	signer := NewHMACSignature("hook-secret")
	payload := []byte(`{"order_id":"o1"}`)
	sig := signer.Sign(payload)

	if err := signer.Verify(payload, sig); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := signer.Verify([]byte(`{"order_id":"o2"}`), sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for altered payload, got %v", err)
	}
	if err := signer.Verify(payload, "zz-not-hex"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for bad encoding, got %v", err)
	}
	if err := NewHMACSignature("other").Verify(payload, sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for other secret, got %v", err)
	}
	if err := NewHMACSignature("").Verify(payload, NewHMACSignature("").Sign(payload)); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected empty secret to reject, got %v", err)
	}
}
