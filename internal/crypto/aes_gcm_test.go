package crypto

import (
	"bytes"
	"errors"
	"testing"
)

var testKey = bytes.Repeat([]byte{0xAB}, 32)

func TestNewAESGCM_KeySizes(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		if _, err := NewAESGCM(make([]byte, size)); err != nil {
			t.Errorf("key size %d should work: %v", size, err)
		}
	}
	if _, err := NewAESGCM(make([]byte, 20)); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("expected ErrInvalidKeySize for 20-byte key, got %v", err)
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	aead, err := NewAESGCM(testKey)
	if err != nil {
		t.Fatal(err)
	}

	plaintext := []byte("ops@acmefuels.com")
	sealed, err := Encrypt(aead, plaintext)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(sealed, plaintext) {
		t.Error("ciphertext contains the plaintext")
	}

	opened, err := Decrypt(aead, sealed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("round trip mismatch: %q", opened)
	}

	// Same plaintext seals differently each time (random nonce).
	sealed2, err := Encrypt(aead, plaintext)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(sealed, sealed2) {
		t.Error("two seals of the same plaintext should differ")
	}
}

func TestDecrypt_RejectsTampering(t *testing.T) {
	aead, _ := NewAESGCM(testKey)
	sealed, err := Encrypt(aead, []byte("+234-800-555-0100"))
	if err != nil {
		t.Fatal(err)
	}

	sealed[len(sealed)-1] ^= 0x01
	if _, err := Decrypt(aead, sealed); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}

	if _, err := Decrypt(aead, []byte{0x01, 0x02}); !errors.Is(err, ErrInvalidCiphertext) {
		t.Errorf("expected ErrInvalidCiphertext for short input, got %v", err)
	}
}

func TestEncryptString_EmptyStaysEmpty(t *testing.T) {
	aead, _ := NewAESGCM(testKey)

	sealed, err := EncryptString(aead, "")
	if err != nil || sealed != nil {
		t.Errorf("empty string should seal to nil, got %v / %v", sealed, err)
	}
	value, err := DecryptString(aead, nil)
	if err != nil || value != "" {
		t.Errorf("nil should open to empty string, got %q / %v", value, err)
	}

	sealed, err = EncryptString(aead, "lagos-depot")
	if err != nil {
		t.Fatal(err)
	}
	value, err = DecryptString(aead, sealed)
	if err != nil || value != "lagos-depot" {
		t.Errorf("round trip failed: %q / %v", value, err)
	}
}
