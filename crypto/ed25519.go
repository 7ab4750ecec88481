// Package crypto wraps the key types used to sign transactions and to
// derive signer conditions.
package crypto

import (
	"github.com/AlphaR2/soteria"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions derived from signatures.
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key. No
// serialization requirement, to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Signature is a detached signature of one message.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// PublicKey identifies a signer.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Verify returns true if the signature was created for this message
// with the private key matching this public key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into an authorization condition.
func (p *PublicKey) Condition() soteria.Condition {
	return soteria.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is a shortcut for Condition().Address().
func (p *PublicKey) Address() soteria.Address {
	return p.Condition().Address()
}

// PrivateKey can sign messages.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding public key.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed deterministically generates a private key from
// a given seed. Use for deterministic keys in test cases, or if you
// have a strong source of external randomness.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
