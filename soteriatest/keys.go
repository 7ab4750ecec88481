package soteriatest

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/crypto"
)

// NewKey returns a random private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a freshly generated key.
func NewCondition() soteria.Condition {
	return NewKey().PublicKey().Condition()
}
