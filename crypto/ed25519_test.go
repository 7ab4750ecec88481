package crypto

import (
	"bytes"
	"testing"

	"github.com/AlphaR2/soteria/soteriatest/assert"
)

func TestSignAndVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()

	msg := []byte("rock and roll")
	sig, err := priv.Sign(msg)
	assert.Nil(t, err)

	if !pub.Verify(msg, sig) {
		t.Fatal("signature does not verify")
	}
	if pub.Verify([]byte("different message"), sig) {
		t.Fatal("signature verified for a different message")
	}

	other := GenPrivKeyEd25519().PublicKey()
	if other.Verify(msg, sig) {
		t.Fatal("signature verified with a different key")
	}
	if pub.Verify(msg, nil) {
		t.Fatal("nil signature verified")
	}
}

func TestPrivKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{42}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.PublicKey(), b.PublicKey())
}

func TestCondition(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	cond := pub.Condition()

	ext, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, pub.Ed25519, data)
	assert.Equal(t, cond.Address(), pub.Address())
}
