package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the bcrypt input limit; longer inputs are rejected, not truncated.
const MaxPasswordBytes = 72

var (
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrPasswordTooLong = fmt.Errorf("password exceeds %d bytes", MaxPasswordBytes)
)

// Hasher hashes user passwords with bcrypt at a fixed number of rounds.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher for cost; zero or out-of-range values use bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) HashPassword(plain string) (string, error) {
	if err := checkLength(plain); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash. A mismatch is not an error.
func (h *Hasher) VerifyPassword(plain, hash string) (bool, error) {
	if hash == "" {
		return false, errors.New("stored hash is empty")
	}
	if err := checkLength(plain); err != nil {
		return false, err
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}

// NeedsRehash reports whether hash was produced with a different cost than the
// hasher's. Unparseable hashes always need rehashing.
func (h *Hasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != h.cost
}

func checkLength(plain string) error {
	switch {
	case plain == "":
		return ErrEmptyPassword
	case len(plain) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}
