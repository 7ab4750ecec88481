package app

import (
	"reflect"

	"github.com/AlphaR2/soteria"
)

// Decorators holds a chain of decorators, not yet resolved by a
// Handler.
type Decorators struct {
	chain []soteria.Decorator
}

// ChainDecorators takes a chain of decorators, and upon adding a final
// Handler (often a Router), returns a Handler that will execute this
// whole stack.
//
//	app.ChainDecorators(
//	  utils.NewLogging(),
//	  utils.NewRecovery(),
//	  utils.NewSavepoint().OnDeliver(),
//	).WithHandler(
//	  app.NewRouter(),
//	)
func ChainDecorators(chain ...soteria.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain appends more decorators to the chain. Nil entries are dropped.
func (d Decorators) Chain(chain ...soteria.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := append(d.chain, chain...)
	return Decorators{chain: newChain}
}

// cutoffNil removes in place all nil values from given slice.
func cutoffNil(ds []soteria.Decorator) []soteria.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler that
// will pass through the chain of decorators before calling the final
// Handler.
func (d Decorators) WithHandler(h soteria.Handler) soteria.Handler {
	// Wrap from the last decorator to the first one, as the top of
	// the chain is executed first.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a specific
// Handler. Simplified version of a closure.
type step struct {
	d    soteria.Decorator
	next soteria.Handler
}

var _ soteria.Handler = step{}

// Check passes the handler into the decorator, implements Handler.
func (s step) Check(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler.
func (s step) Deliver(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
