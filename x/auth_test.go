package x

import (
	"context"
	"testing"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/soteriatest/assert"
)

type fixedAuth struct {
	conds []soteria.Condition
}

var _ Authenticator = fixedAuth{}

func (a fixedAuth) GetConditions(soteria.Context) []soteria.Condition {
	return a.conds
}

func (a fixedAuth) HasAddress(_ soteria.Context, addr soteria.Address) bool {
	for _, c := range a.conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}

func TestChainAuth(t *testing.T) {
	a := soteria.NewCondition("sigs", "ed25519", []byte{1, 2, 3})
	b := soteria.NewCondition("sigs", "ed25519", []byte{4, 5, 6})
	c := soteria.NewCondition("custom", "type", []byte{7, 8, 9})

	ctx := context.Background()

	cases := map[string]struct {
		auth       Authenticator
		wantConds  []soteria.Condition
		hasAddr    soteria.Address
		wantHas    bool
		mainSigner soteria.Condition
	}{
		"empty chain": {
			auth:       ChainAuth(),
			wantConds:  nil,
			hasAddr:    a.Address(),
			wantHas:    false,
			mainSigner: nil,
		},
		"single authenticator": {
			auth:       ChainAuth(fixedAuth{conds: []soteria.Condition{a}}),
			wantConds:  []soteria.Condition{a},
			hasAddr:    a.Address(),
			wantHas:    true,
			mainSigner: a,
		},
		"chained authenticators combine": {
			auth: ChainAuth(
				fixedAuth{conds: []soteria.Condition{a}},
				fixedAuth{conds: []soteria.Condition{b, c}},
			),
			wantConds:  []soteria.Condition{a, b, c},
			hasAddr:    c.Address(),
			wantHas:    true,
			mainSigner: a,
		},
		"address not present": {
			auth:       ChainAuth(fixedAuth{conds: []soteria.Condition{a}}),
			wantConds:  []soteria.Condition{a},
			hasAddr:    b.Address(),
			wantHas:    false,
			mainSigner: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantConds, tc.auth.GetConditions(ctx))
			assert.Equal(t, tc.wantHas, tc.auth.HasAddress(ctx, tc.hasAddr))
			assert.Equal(t, tc.mainSigner, MainSigner(ctx, tc.auth))
		})
	}
}

func TestHasAllAddresses(t *testing.T) {
	a := soteria.NewCondition("sigs", "ed25519", []byte{1})
	b := soteria.NewCondition("sigs", "ed25519", []byte{2})
	c := soteria.NewCondition("sigs", "ed25519", []byte{3})

	ctx := context.Background()
	auth := fixedAuth{conds: []soteria.Condition{a, b}}

	assert.Equal(t, true, HasAllAddresses(ctx, auth, nil))
	assert.Equal(t, true, HasAllAddresses(ctx, auth, []soteria.Address{a.Address()}))
	assert.Equal(t, true, HasAllAddresses(ctx, auth, []soteria.Address{a.Address(), b.Address()}))
	assert.Equal(t, false, HasAllAddresses(ctx, auth, []soteria.Address{a.Address(), c.Address()}))
}

func TestHasNAddresses(t *testing.T) {
	a := soteria.NewCondition("sigs", "ed25519", []byte{1})
	b := soteria.NewCondition("sigs", "ed25519", []byte{2})
	c := soteria.NewCondition("sigs", "ed25519", []byte{3})

	ctx := context.Background()
	auth := fixedAuth{conds: []soteria.Condition{a, b}}
	all := []soteria.Address{a.Address(), b.Address(), c.Address()}

	assert.Equal(t, true, HasNAddresses(ctx, auth, all, 0))
	assert.Equal(t, true, HasNAddresses(ctx, auth, all, 1))
	assert.Equal(t, true, HasNAddresses(ctx, auth, all, 2))
	assert.Equal(t, false, HasNAddresses(ctx, auth, all, 3))
}

func TestHasNConditions(t *testing.T) {
	a := soteria.NewCondition("sigs", "ed25519", []byte{1})
	b := soteria.NewCondition("sigs", "ed25519", []byte{2})
	c := soteria.NewCondition("sigs", "ed25519", []byte{3})

	ctx := context.Background()
	auth := fixedAuth{conds: []soteria.Condition{a, b}}
	all := []soteria.Condition{a, b, c}

	assert.Equal(t, true, HasNConditions(ctx, auth, all, 0))
	assert.Equal(t, true, HasNConditions(ctx, auth, all, 2))
	assert.Equal(t, false, HasNConditions(ctx, auth, all, 3))
	assert.Equal(t, true, HasAllConditions(ctx, auth, []soteria.Condition{a, b}))
	assert.Equal(t, false, HasAllConditions(ctx, auth, all))
}
