package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/coin"
	"github.com/AlphaR2/soteria/migration"
	"github.com/AlphaR2/soteria/soteriatest"
	"github.com/AlphaR2/soteria/soteriatest/assert"
	"github.com/AlphaR2/soteria/store"
)

func TestInitFromGenesis(t *testing.T) {
	addr := soteriatest.NewCondition().Address()

	raw := fmt.Sprintf(`[
		{
			"address": "%s",
			"coins": [
				{"whole": 50, "ticker": "ETH"},
				{"whole": 150, "fractional": 500000000, "ticker": "BTC"}
			]
		}
	]`, addr)
	opts := soteria.Options{optKey: json.RawMessage(raw)}

	db := store.MemStore()
	migration.MustInitPkg(db, "cash")
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	wallet, err := NewBucket().Get(db, addr)
	assert.Nil(t, err)
	if wallet == nil {
		t.Fatal("genesis account not stored")
	}
	want, err := coin.CombineCoins(
		coin.NewCoin(150, 500000000, "BTC"),
		coin.NewCoin(50, 0, "ETH"),
	)
	assert.Nil(t, err)
	assert.Equal(t, want, wallet.Coins())
}

func TestInitFromGenesisIgnoresMissingKey(t *testing.T) {
	db := store.MemStore()
	migration.MustInitPkg(db, "cash")
	assert.Nil(t, Initializer{}.FromGenesis(soteria.Options{}, db))
}
