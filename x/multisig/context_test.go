package multisig

import (
	"context"
	"testing"

	"github.com/AlphaR2/soteria/soteriatest/assert"
)

func TestMultiSigCondition(t *testing.T) {
	id := []byte{0, 0, 0, 0, 0, 0, 0, 1}
	cond := MultiSigCondition(id)

	ext, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "multisig", ext)
	assert.Equal(t, "usage", typ)
	assert.Equal(t, id, data)
}

func TestAuthenticate(t *testing.T) {
	id := []byte{0, 0, 0, 0, 0, 0, 0, 7}
	auth := Authenticate{}

	empty := context.Background()
	assert.Equal(t, 0, len(auth.GetConditions(empty)))
	assert.Equal(t, false, auth.HasAddress(empty, MultiSigCondition(id).Address()))

	ctx := withMultisig(empty, id)
	conds := auth.GetConditions(ctx)
	assert.Equal(t, 1, len(conds))
	assert.Equal(t, MultiSigCondition(id), conds[0])
	assert.Equal(t, true, auth.HasAddress(ctx, MultiSigCondition(id).Address()))

	other := []byte{0, 0, 0, 0, 0, 0, 0, 8}
	assert.Equal(t, false, auth.HasAddress(ctx, MultiSigCondition(other).Address()))
}
