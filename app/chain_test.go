package app

import (
	"testing"

	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/soteriatest"
	"github.com/AlphaR2/soteria/soteriatest/assert"
)

func TestChain(t *testing.T) {
	h := &soteriatest.Handler{}
	d1 := &soteriatest.Decorator{}
	d2 := &soteriatest.Decorator{}
	d3 := &soteriatest.Decorator{}

	stack := ChainDecorators(d1, nil, d2).
		Chain(d3).
		WithHandler(h)

	tx := &soteriatest.Tx{Msg: &soteriatest.Msg{RoutePath: "test/good"}}

	_, err := stack.Check(nil, nil, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(nil, nil, tx)
	assert.Nil(t, err)

	assert.Equal(t, 2, h.CallCount())
	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, d3.CallCount())
}

func TestChainAbort(t *testing.T) {
	h := &soteriatest.Handler{}
	d1 := &soteriatest.Decorator{}
	d2 := &soteriatest.Decorator{
		CheckErr:   errors.Wrap(errors.ErrUnauthorized, "no"),
		DeliverErr: errors.Wrap(errors.ErrUnauthorized, "no"),
	}

	stack := ChainDecorators(d1, d2).WithHandler(h)
	tx := &soteriatest.Tx{Msg: &soteriatest.Msg{RoutePath: "test/good"}}

	if _, err := stack.Check(nil, nil, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("expected unauthorized, got %+v", err)
	}
	if _, err := stack.Deliver(nil, nil, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("expected unauthorized, got %+v", err)
	}

	// The aborting decorator is reached, the handler is not.
	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 0, h.CallCount())
}
