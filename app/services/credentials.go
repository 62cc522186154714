package services

import (
	"strings"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/auth"
)

// CredentialVerifier turns a password into its stored form and checks a
// candidate against it.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}

// NewVerifier returns the verifier for scheme ("plain" or "bcrypt").
func NewVerifier(scheme string) CredentialVerifier {
	if scheme == "bcrypt" {
		return BcryptVerifier{}
	}
	return PlainVerifier{}
}

// PlainVerifier stores passwords as given and compares trimmed strings.
type PlainVerifier struct{}

func (PlainVerifier) Hash(password string) (string, error) {
	return strings.TrimSpace(password), nil
}

func (PlainVerifier) Verify(stored, candidate string) bool {
	return strings.TrimSpace(stored) == strings.TrimSpace(candidate)
}

// BcryptVerifier stores bcrypt hashes. Rows written before the scheme was
// switched still hold plain text and are compared as such.
type BcryptVerifier struct{}

func (BcryptVerifier) Hash(password string) (string, error) {
	return auth.HashPassword(password)
}

func (BcryptVerifier) Verify(stored, candidate string) bool {
	if auth.IsHash(stored) {
		return auth.CheckPassword(stored, candidate)
	}
	return PlainVerifier{}.Verify(stored, candidate)
}
