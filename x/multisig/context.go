package multisig

import (
	"context"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/x"
)

type contextKey int // local to the multisig module

const contextKeyMultisig contextKey = iota

// withMultisig is private, only the execute path may grant the
// contract condition.
func withMultisig(ctx soteria.Context, contractID []byte) soteria.Context {
	return context.WithValue(ctx, contextKeyMultisig, MultiSigCondition(contractID))
}

// MultiSigCondition returns the condition of a contract. Its address
// owns the contract treasury.
func MultiSigCondition(contractID []byte) soteria.Condition {
	return soteria.NewCondition("multisig", "usage", contractID)
}

// Authenticate gets conditions set by this module on the context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the contract condition previously granted on
// this context, if any.
func (a Authenticate) GetConditions(ctx soteria.Context) []soteria.Condition {
	// (val, ok) form to return nil instead of panic if unset.
	val, _ := ctx.Value(contextKeyMultisig).(soteria.Condition)
	if val == nil {
		return nil
	}
	return []soteria.Condition{val}
}

// HasAddress returns true iff this address is in GetConditions.
func (a Authenticate) HasAddress(ctx soteria.Context, addr soteria.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
