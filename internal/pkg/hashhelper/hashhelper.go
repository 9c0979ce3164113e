package hashhelper

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptHash is returned when a stored hash cannot be parsed at all,
// as opposed to a plain password mismatch.
var ErrCorruptHash = errors.New("corrupt password hash")

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches hash. The bool is
// authoritative for a well-formed hash; a malformed hash yields ErrCorruptHash.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, fmt.Errorf("%w -> %v", ErrCorruptHash, err)
}
