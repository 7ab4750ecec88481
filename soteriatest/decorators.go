package soteriatest

import "github.com/AlphaR2/soteria"

// Decorator is a mock implementation of the soteria.Decorator
// interface.
//
// Set CheckErr or DeliverErr to force an error response for the
// corresponding method. Otherwise the wrapped handler is called and
// its result returned. Each method call is counted regardless of the
// result.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ soteria.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx, next soteria.Checker) (*soteria.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx, next soteria.Deliverer) (*soteria.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wires a handler behind a decorator, returning a handler.
func Decorate(h soteria.Handler, d soteria.Decorator) soteria.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn soteria.Handler
	dc soteria.Decorator
}

var _ soteria.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
