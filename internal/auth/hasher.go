package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is used when no valid cost is configured.
const DefaultBcryptCost = 10

// PasswordHasher hashes passwords one way and verifies them.
type PasswordHasher interface {
	Hash(password []byte) ([]byte, error)
	Compare(hash, password []byte) error
}

// BcryptHasher implements PasswordHasher with salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

// Ensure BcryptHasher implements PasswordHasher
var _ PasswordHasher = BcryptHasher{}

// NewBcryptHasher creates a hasher; costs outside bcrypt's range fall back
// to DefaultBcryptCost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return BcryptHasher{Cost: cost}
}

// Hash returns a salted bcrypt hash of password.
func (h BcryptHasher) Hash(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, h.Cost)
}

// Compare returns nil only if password matches hash. bcrypt compares the
// derived keys in constant time.
func (h BcryptHasher) Compare(hash, password []byte) error {
	return bcrypt.CompareHashAndPassword(hash, password)
}
