// Package auth holds password hashing for the bcrypt credential scheme.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the trimmed plain-text password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(plain)), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword compares a bcrypt hash against the trimmed candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(hash)), []byte(strings.TrimSpace(plain))) == nil
}

// IsHash reports whether s looks like a bcrypt hash.
func IsHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
