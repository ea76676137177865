package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

// PlaintextVerifier stores and compares secrets verbatim. It exists for
// compatibility with directories imported from the legacy gateway, which kept
// raw passwords on disk. Do not use it for a real deployment; select
// CREDENTIAL_SCHEME=bcrypt instead.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(plain string) (string, error) {
	return plain, nil
}

func (PlaintextVerifier) Verify(stored, presented string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) != 1 {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// BcryptVerifier stores salted bcrypt hashes.
type BcryptVerifier struct {
	// Cost defaults to bcrypt.DefaultCost when zero.
	Cost int
}

func (v BcryptVerifier) Hash(plain string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (v BcryptVerifier) Verify(stored, presented string) error {
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}
