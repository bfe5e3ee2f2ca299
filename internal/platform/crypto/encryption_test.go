package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := hex.EncodeToString(bytes.Repeat([]byte{0x42}, 32))
	svc, err := New(key)
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	if !svc.Configured() {
		t.Fatal("expected service to be configured")
	}

	plain := []byte("receipt contents")
	sealed, err := svc.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt error: %v", err)
	}
	if bytes.Equal(sealed, plain) {
		t.Fatal("ciphertext must differ from plaintext")
	}

	opened, err := svc.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt error: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Fatalf("round trip mismatch: %q", opened)
	}
}

func TestPassthroughWithoutKey(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	if svc.Configured() {
		t.Fatal("expected unconfigured service")
	}

	plain := []byte("data")
	sealed, err := svc.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt error: %v", err)
	}
	if !bytes.Equal(sealed, plain) {
		t.Fatal("expected passthrough")
	}
}

func TestRejectsShortKey(t *testing.T) {
	if _, err := New("too-short"); err == nil {
		t.Fatal("expected key length error")
	}
}
