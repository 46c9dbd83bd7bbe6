package password_test

import (
	"strings"
	"testing"

	"github.com/ErlanBelekov/blog-platform/internal/password"
)

func TestHashVerify_Roundtrip(t *testing.T) {
	hash, err := password.Hash("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !password.Verify("secret1", hash) {
		t.Error("same plaintext should verify")
	}
	if password.Verify("secret2", hash) {
		t.Error("different plaintext should not verify")
	}
}

func TestHash_Salted(t *testing.T) {
	h1, err := password.Hash("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := password.Hash("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (salt)")
	}
}

func TestHash_CostFactor(t *testing.T) {
	hash, err := password.Hash("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(hash, "$10$") {
		t.Errorf("hash %q does not encode cost 10", hash)
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	if password.Verify("secret1", "not-a-bcrypt-hash") {
		t.Error("malformed hash must read as mismatch")
	}
}
