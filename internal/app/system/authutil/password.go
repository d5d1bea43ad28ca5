// Package authutil verifies submitted secrets against the values stored in
// the user directory.
package authutil

import (
	"crypto/subtle"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used by HashPassword.
const BcryptCost = 12

// bcryptPrefixes identify modular-crypt bcrypt hashes.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsBcryptHash reports whether stored looks like a bcrypt hash.
func IsBcryptHash(stored string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			return true
		}
	}
	return false
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plain-text password with a bcrypt hash.
// Returns true if the password matches, false otherwise.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// dummyPassword is hashed once to give CompareDummy a real hash to work on.
const dummyPassword = "stratahr-no-such-account"

// CompareDummy runs a bcrypt comparison at BcryptCost against a hash that
// belongs to no account. Failure paths that have no stored bcrypt hash call
// it so they take as long as a wrong password against a real one.
func CompareDummy(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = HashPassword(dummyPassword)
	})
	_ = CheckPassword(password, dummyHash)
}

// CheckSecret compares a submitted secret with the value stored in the
// directory.
//
// Bcrypt hashes are verified with bcrypt. Any other stored value is treated
// as a legacy plaintext secret: it matches only when allowPlaintext is set,
// and the comparison runs in constant time. Empty inputs never match.
func CheckSecret(provided, stored string, allowPlaintext bool) bool {
	if provided == "" || stored == "" {
		return false
	}
	if IsBcryptHash(stored) {
		return CheckPassword(provided, stored)
	}
	if !allowPlaintext {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(stored)) == 1
}
