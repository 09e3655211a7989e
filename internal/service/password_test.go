package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "" || hash == "secret1" {
		t.Fatalf("bad hash: %q", hash)
	}
	if !h.Verify("secret1", hash) {
		t.Fatalf("verify rejected correct password")
	}
	if h.Verify("secret2", hash) {
		t.Fatalf("verify accepted wrong password")
	}
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	a, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password are identical; salt missing")
	}
}

func TestNewPasswordHasher_DefaultCost(t *testing.T) {
	h := NewPasswordHasher(0)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, h.cost)
	}
}
