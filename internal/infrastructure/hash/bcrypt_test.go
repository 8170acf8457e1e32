package hash

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if digest == "secret1" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("expected a bcrypt digest, got %q", digest)
	}

	if !h.Verify("secret1", digest) {
		t.Fatalf("verify rejected the correct password")
	}
	if h.Verify("secret2", digest) {
		t.Fatalf("verify accepted a wrong password")
	}
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	h := NewBcryptHasher(100)

	digest, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed with out-of-range cost: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("cost extraction failed: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected clamped cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestBcryptHasher_VerifyGarbageDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	if h.Verify("secret1", "not-a-digest") {
		t.Fatalf("verify accepted a malformed digest")
	}
}
