package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost balances brute-force resistance against login latency.
const DefaultBcryptCost = 10

// HashPassword hashes a plaintext password with the given cost. Each call
// embeds a fresh random salt, so hashing the same password twice yields
// different digests.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against its stored digest using
// the salt embedded in the digest. A mismatch is a normal false result, not
// an error.
func VerifyPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
