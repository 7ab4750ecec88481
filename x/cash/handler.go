package cash

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/migration"
	"github.com/AlphaR2/soteria/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r soteria.Registry, auth x.Authenticator, control Controller) {
	r = migration.SchemaMigratingRegistry("cash", r)

	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery will register the wallet bucket as "/wallets".
func RegisterQuery(qr soteria.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending coins.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ soteria.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message is properly formed and authorized, and
// returns the cost of executing it.
func (h SendHandler) Check(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	var msg SendMsg
	if err := soteria.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source owner signature missing")
	}

	res := soteria.CheckResult{
		GasAllocated: sendTxCost,
	}
	return &res, nil
}

// Deliver moves the tokens from source to destination if all
// preconditions are met.
func (h SendHandler) Deliver(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	var msg SendMsg
	if err := soteria.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source owner signature missing")
	}

	if err := h.control.MoveCoins(store, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &soteria.DeliverResult{}, nil
}
