package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost factor used when the caller passes 0.
const DefaultCost = 10

var ErrSecretTooLong = errors.New("secret exceeds 72 bytes")

// Hash derives a salted bcrypt digest from a secret. The same secret hashed
// twice produces different digests. Used for login passwords, refresh-token
// secrets and password-reset codes alike; none of them are ever stored in
// plaintext.
func Hash(secret string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultCost
	}
	if len(secret) > 72 {
		return "", ErrSecretTooLong
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// Compare reports whether the secret matches the stored digest.
func Compare(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
