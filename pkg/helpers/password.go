package helpers

import "golang.org/x/crypto/bcrypt"

// BcryptHasher hashes and checks passwords with bcrypt.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() BcryptHasher { return BcryptHasher{Cost: bcrypt.DefaultCost} }

// Hash hashes the plain text password
func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether plain matches the bcrypt hash
func (h BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
