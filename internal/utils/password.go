package utils

import "golang.org/x/crypto/bcrypt"

// HashSecret hashes the admin secret at startup.  Login compares candidates
// against the hash only.
func HashSecret(secret string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	return string(hash), err
}

// VerifySecret reports whether candidate matches hash.  A malformed hash
// never matches.
func VerifySecret(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
