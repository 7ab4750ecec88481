package app

import (
	"fmt"
	"regexp"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
)

// isPath constraints the format of a routable message path.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows to register many handlers with different paths and
// then direct each message to the registered handler.
type Router struct {
	handlers map[string]soteria.Handler
}

var _ soteria.Registry = (*Router)(nil)
var _ soteria.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]soteria.Handler),
	}
}

// Handle implements Registry interface.
func (r *Router) Handle(m soteria.Msg, h soteria.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %T: %s", m, path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("double registration of a handler for path %q", path))
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPathHandler.
func (r *Router) handler(m soteria.Msg) soteria.Handler {
	path := m.Path()
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Deliver(ctx, store, tx)
}

// noSuchPathHandler always returns ErrNotFound error regardless of the
// arguments provided.
type noSuchPathHandler struct {
	path string
}

var _ soteria.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(soteria.Context, soteria.KVStore, soteria.Tx) (*soteria.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(soteria.Context, soteria.KVStore, soteria.Tx) (*soteria.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
