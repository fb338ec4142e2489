package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("digest must not equal the plaintext")
	}
	if !VerifyPassword(hash, "secret1") {
		t.Fatal("verify should succeed for the original password")
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if VerifyPassword(hash, "secret2") {
		t.Fatal("verify should fail for a different password")
	}
}

func TestHashPassword_SaltUniqueness(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
	if !VerifyPassword(first, "secret1") || !VerifyPassword(second, "secret1") {
		t.Fatal("both digests must verify against the original password")
	}
}

func TestVerifyPassword_GarbageDigest(t *testing.T) {
	t.Parallel()

	if VerifyPassword("not-a-bcrypt-digest", "secret1") {
		t.Fatal("verify should fail for a malformed digest")
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost error: %v", err)
	}
	if cost != DefaultBcryptCost {
		t.Fatalf("cost mismatch: got %d want %d", cost, DefaultBcryptCost)
	}
}
