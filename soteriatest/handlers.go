package soteriatest

import "github.com/AlphaR2/soteria"

// Handler is a mock implementation of the soteria.Handler interface.
// Each method call is counted and returns the configured result.
type Handler struct {
	checkCall   int
	CheckResult soteria.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult soteria.DeliverResult
	DeliverErr    error
}

var _ soteria.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
