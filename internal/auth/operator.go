package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	pkgerrors "pokedex/pkg/errors"
)

// KeyVerifier checks the operator key presented to POST /auth/token.
type KeyVerifier struct {
	hash []byte
}

// NewKeyVerifier prefers a configured bcrypt hash; a plain key is hashed
// once at startup. With neither, every key is rejected.
func NewKeyVerifier(hash, plain string) (*KeyVerifier, error) {
	switch {
	case hash != "":
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("operator key hash: %w", err)
		}
		return &KeyVerifier{hash: []byte(hash)}, nil
	case plain != "":
		h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash operator key: %w", err)
		}
		return &KeyVerifier{hash: h}, nil
	default:
		return &KeyVerifier{}, nil
	}
}

func (v *KeyVerifier) Verify(key string) error {
	if v == nil || len(v.hash) == 0 || key == "" {
		return pkgerrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(key)); err != nil {
		return pkgerrors.ErrUnauthorized
	}
	return nil
}
