// Package password wraps bcrypt hashing so the rest of the code never sees
// the algorithm or its cost parameters.
package password

import "golang.org/x/crypto/bcrypt"

// Hash generates a salted bcrypt hash from a plaintext password.
func Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed hash
// is a verification failure, not an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
