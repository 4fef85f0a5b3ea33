package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt embeds a random per-call salt, so hashing the same plaintext
// twice yields different hashes.
const bcryptCost = 10

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword reports whether the plaintext matches the stored hash.
// The comparison inside bcrypt is constant-time.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
