package crypto

import (
	"crypto/sha256"
	"crypto/subtle"

	domainerrors "openings/contexts/identity-access/identity-service/domain/errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// AlgorithmBcrypt is the default for newly computed hashes.
	AlgorithmBcrypt = "bcrypt"
	// AlgorithmSHA256 is kept verify-only for rows written before the
	// bcrypt rollout. UpdatePassword rotates such rows to bcrypt.
	AlgorithmSHA256 = "sha256"
)

// Hasher is the algorithm-tagged credential hasher.
type Hasher struct {
	Cost int
}

func (h Hasher) Hash(secret string) ([]byte, string, error) {
	cost := h.Cost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, "", err
	}
	return hash, AlgorithmBcrypt, nil
}

func (h Hasher) Verify(secret string, hash []byte, algorithm string) (bool, error) {
	switch algorithm {
	case AlgorithmBcrypt:
		err := bcrypt.CompareHashAndPassword(hash, []byte(secret))
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	case AlgorithmSHA256:
		sum := sha256.Sum256([]byte(secret))
		return subtle.ConstantTimeCompare(sum[:], hash) == 1, nil
	default:
		return false, domainerrors.ErrUnknownHashAlgorithm
	}
}
