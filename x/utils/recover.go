package utils

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
)

// Recovery is a decorator that converts panics raised by the wrapped
// handler into normal errors and logs them. The process stays alive,
// the failing transaction is rejected.
type Recovery struct{}

var _ soteria.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx, next soteria.Checker) (_ *soteria.CheckResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx, next soteria.Deliverer) (_ *soteria.DeliverResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// logPanic runs after errors.Recover converted a panic, the deferred
// calls unwind in reverse registration order.
func logPanic(ctx soteria.Context, err *error) {
	if *err != nil && errors.ErrPanic.Is(*err) {
		soteria.GetLogger(ctx).Error("transaction panicked", "err", *err)
	}
}
