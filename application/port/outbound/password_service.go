package outbound

// PasswordService hashes and checks user passwords.
type PasswordService interface {
	HashPassword(plain string) (string, error)
	VerifyPassword(plain, hash string) (bool, error)
	// NeedsRehash reports whether a stored hash should be upgraded to the current parameters.
	NeedsRehash(hash string) bool
}
