package auth

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor for admin passwords. DefaultCost keeps
// dashboard logins fast enough while staying above the library minimum.
const hashCost = bcrypt.DefaultCost

// HashPassword returns a bcrypt hash of password at the configured cost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		log.Printf("ERROR [Auth] Generating bcrypt hash: %v", err)
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
// Any comparison error, expected or not, reads as a non-match.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if err != bcrypt.ErrMismatchedHashAndPassword {
			log.Printf("WARN [Auth] Comparing password hash: %v", err)
		}
		return false
	}
	return true
}
