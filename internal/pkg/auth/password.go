package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor applied to new password hashes.
const BcryptCost = 10

// HashPassword computes a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a password against a stored hash. The hash is
// never reversed; comparison is one-way.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
