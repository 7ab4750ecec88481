package utils_test

import (
	"context"
	"testing"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/app"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/soteriatest"
	"github.com/AlphaR2/soteria/soteriatest/assert"
	"github.com/AlphaR2/soteria/store"
	"github.com/AlphaR2/soteria/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack soteria.Handler
		tx    soteria.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&soteriatest.Handler{},
			),
			tx:   &soteriatest.Tx{Msg: &soteriatest.Msg{RoutePath: "multisig/vote"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "multisig/vote")},
		},
		"passes through error": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&soteriatest.Handler{DeliverErr: errors.ErrHuman},
			),
			tx:  &soteriatest.Tx{Msg: &soteriatest.Msg{RoutePath: "multisig/vote"}},
			err: errors.ErrHuman,
		},
		"tags are additive": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&soteriatest.Handler{
					DeliverResult: soteria.DeliverResult{Tags: []common.KVPair{stringTag(utils.ActionKey, "random")}},
				},
			),
			tx:   &soteriatest.Tx{Msg: &soteriatest.Msg{RoutePath: "multisig/vote"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "random"), stringTag(utils.ActionKey, "multisig/vote")},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			res, err := tc.stack.Deliver(ctx, db, tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("unexpected error type returned: %v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, len(tc.tags), len(res.Tags))
			for i := range tc.tags {
				assert.Equal(t, string(tc.tags[i].Key), string(res.Tags[i].Key))
				assert.Equal(t, string(tc.tags[i].Value), string(res.Tags[i].Value))
			}
		})
	}
}
