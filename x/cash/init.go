package cash

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/coin"
	"github.com/AlphaR2/soteria/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from the genesis file.
type GenesisAccount struct {
	Address soteria.Address `json:"address"`
	Coins   coin.Coins      `json:"coins"`
}

// Initializer fulfils the Initializer interface to load initial
// account balances from the genesis file.
type Initializer struct{}

var _ soteria.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it
// to the database.
func (Initializer) FromGenesis(opts soteria.Options, kv soteria.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		wallet, err := WalletWith(acct.Address, acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return errors.Wrapf(err, "save account #%d", i)
		}
	}
	return nil
}
