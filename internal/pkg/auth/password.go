package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for password digests
const BcryptCost = 12

// HashPassword produces a salted bcrypt digest of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether the password matches the stored digest
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
