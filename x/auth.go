package x

import (
	"github.com/AlphaR2/soteria"
)

// Authenticator extracts authentication information from the context. All
// handlers take one via their constructor so the authentication backend can
// be swapped or stacked without touching handler logic.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled in this context.
	GetConditions(soteria.Context) []soteria.Condition
	// HasAddress checks if any fulfilled condition matches this address.
	HasAddress(soteria.Context, soteria.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines the conditions from all chained Authenticators.
func (m MultiAuth) GetConditions(ctx soteria.Context) []soteria.Condition {
	var res []soteria.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true if any chained Authenticator confirms the address.
func (m MultiAuth) HasAddress(ctx soteria.Context, addr soteria.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses for all conditions fulfilled in this
// context.
func GetAddresses(ctx soteria.Context, auth Authenticator) []soteria.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]soteria.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx soteria.Context, auth Authenticator) soteria.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all required addresses are authenticated
// in this context.
func HasAllAddresses(ctx soteria.Context, auth Authenticator, required []soteria.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n of the given addresses are
// authenticated in this context.
func HasNAddresses(ctx soteria.Context, auth Authenticator, required []soteria.Address, n int) bool {
	if n <= 0 {
		return true
	}
	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}

// HasAllConditions returns true if all required conditions are fulfilled in
// this context.
func HasAllConditions(ctx soteria.Context, auth Authenticator, required []soteria.Condition) bool {
	return HasNConditions(ctx, auth, required, len(required))
}

// HasNConditions returns true if at least n of the requested conditions are
// fulfilled in this context. Useful for threshold checks (2 of 3, 3 of 5).
func HasNConditions(ctx soteria.Context, auth Authenticator, requested []soteria.Condition, n int) bool {
	if n <= 0 {
		return true
	}
	perms := auth.GetConditions(ctx)
	for _, perm := range requested {
		for _, has := range perms {
			if perm.Equals(has) {
				n--
				if n == 0 {
					return true
				}
				break
			}
		}
	}
	return false
}
