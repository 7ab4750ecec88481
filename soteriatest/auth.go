// Package soteriatest provides mocks and helpers shared by extension
// tests.
package soteriatest

import (
	"context"
	"fmt"

	"github.com/AlphaR2/soteria"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// It authenticates any of the referenced conditions. Use either Signer
// or Signers (or both), all declared signers are considered each time.
type Auth struct {
	// Signer is a convenience attribute when authenticating a single
	// signer.
	Signer soteria.Condition

	// Signers represents an authentication of multiple signers.
	Signers []soteria.Condition
}

func (a *Auth) GetConditions(soteria.Context) []soteria.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx soteria.Context, addr soteria.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing the x.Authenticator interface, using
// the context to store and retrieve conditions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx soteria.Context, conditions ...soteria.Condition) soteria.Context {
	return context.WithValue(ctx, a.Key, conditions)
}

func (a *CtxAuth) GetConditions(ctx soteria.Context) []soteria.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]soteria.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []soteria.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx soteria.Context, addr soteria.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
