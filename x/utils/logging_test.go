package utils_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/soteriatest"
	"github.com/AlphaR2/soteria/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLoggingDeliverSuccess(t *testing.T) {
	var buf bytes.Buffer
	ctx := soteria.WithLogger(context.Background(), log.NewTMLogger(&buf))

	h := soteriatest.Decorate(&soteriatest.Handler{}, utils.NewLogging())
	tx := &soteriatest.Tx{Msg: &soteriatest.Msg{RoutePath: "test/ping"}}
	if _, err := h.Deliver(ctx, nil, tx); err != nil {
		t.Fatalf("deliver: %s", err)
	}

	out := buf.String()
	if !strings.Contains(out, "path=test/ping") {
		t.Fatalf("missing path field: %q", out)
	}
	if !strings.Contains(out, "duration=") {
		t.Fatalf("missing duration field: %q", out)
	}
	if strings.Contains(out, "err=") {
		t.Fatalf("unexpected error field: %q", out)
	}
}

func TestLoggingDeliverFailure(t *testing.T) {
	var buf bytes.Buffer
	ctx := soteria.WithLogger(context.Background(), log.NewTMLogger(&buf))

	handler := &soteriatest.Handler{
		DeliverErr: errors.Wrap(errors.ErrNotFound, "missing thing"),
	}
	h := soteriatest.Decorate(handler, utils.NewLogging())
	tx := &soteriatest.Tx{Msg: &soteriatest.Msg{RoutePath: "test/ping"}}
	if _, err := h.Deliver(ctx, nil, tx); err == nil {
		t.Fatal("deliver error must pass through")
	}

	out := buf.String()
	if !strings.Contains(out, "path=test/ping") {
		t.Fatalf("missing path field: %q", out)
	}
	if !strings.Contains(out, "missing thing") {
		t.Fatalf("missing error description: %q", out)
	}
}
