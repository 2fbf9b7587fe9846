package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the credential store was seeded
// with. Raising it only affects newly hashed passwords.
const bcryptCost = 12

// HashPassword hashes a password with bcrypt. The salt is generated per
// call, so hashing the same password twice yields different strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
