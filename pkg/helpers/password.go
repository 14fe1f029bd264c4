package helpers

import "golang.org/x/crypto/bcrypt"

// Distinct work factors: the password digest is the primary credential, the
// identity secret only gates password resets and tolerates a cheaper cost.
const (
	passwordCost = 10
	identityCost = 5
)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// HashIdentity hashes the secondary identity secret using bcrypt
func HashIdentity(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), identityCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain secret
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
