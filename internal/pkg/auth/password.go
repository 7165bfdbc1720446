package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the work factor used when the admin password is given in plain text
	BcryptCost = 12
	// MinAdminHashCost is the lowest work factor accepted for a configured admin hash
	MinAdminHashCost = 10
)

// ErrWeakPasswordHash is returned for bcrypt hashes below MinAdminHashCost
var ErrWeakPasswordHash = errors.New("password hash cost too low")

// HashPassword hashes the admin password with BcryptCost
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("admin password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPasswordHash checks a configured admin hash at startup so a typo in
// ADMIN_PASSWORD_HASH fails the boot instead of every login.
func VerifyPasswordHash(hash string) error {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return fmt.Errorf("admin password hash is not a bcrypt hash: %w", err)
	}
	if cost < MinAdminHashCost {
		return fmt.Errorf("%w: cost %d, need at least %d", ErrWeakPasswordHash, cost, MinAdminHashCost)
	}
	return nil
}

// CheckPassword reports whether password matches the bcrypt hash
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
