package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/store"
	"github.com/stretchr/testify/assert"
)

// writeHandler writes the given key, value pair on every call and
// returns the configured error.
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ soteria.Handler = writeHandler{}

func (h writeHandler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &soteria.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &soteria.DeliverResult{}, h.err
}

func TestSavepoint(t *testing.T) {
	// Keys written before the decorated call runs.
	ok, ov := []byte("demo"), []byte("data")
	// Key, value the wrapped handler tries to write.
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		save    soteria.Decorator
		handler soteria.Handler
		check   bool
		isError bool

		written [][]byte
		missing [][]byte
	}{
		"savepoint deactivated, returns error, both written": {
			save:    NewSavepoint(),
			handler: writeHandler{key: nk, value: nv, err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok, nk},
		},
		"savepoint activated, returns error, only prior write kept": {
			save:    NewSavepoint().OnCheck(),
			handler: writeHandler{key: nk, value: nv, err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated for deliver, returns error, only prior write kept": {
			save:    NewSavepoint().OnDeliver(),
			handler: writeHandler{key: nk, value: nv, err: derr},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: writeHandler{key: nk, value: nv, err: derr},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on check does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: writeHandler{key: nk, value: nv, err: derr},
			isError: true,
			written: [][]byte{ok, nk},
		},
		"no rollback when success returned": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: writeHandler{key: nk, value: nv},
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			assert.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}

			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				assert.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				assert.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}
