package multisig

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
)

const optKey = "multisig"

type genesisContract struct {
	Admin            soteria.Address      `json:"admin"`
	Members          []soteria.Address    `json:"members"`
	Threshold        uint32               `json:"threshold"`
	ProposalLifetime soteria.UnixDuration `json:"proposal_lifetime"`
}

// Initializer fulfils the Initializer interface to load contracts
// from the genesis file.
type Initializer struct{}

var _ soteria.Initializer = Initializer{}

// FromGenesis will parse initial multisig contracts from genesis and
// save them to the database. Contract IDs are assigned in the order
// of declaration.
func (Initializer) FromGenesis(opts soteria.Options, kv soteria.KVStore) error {
	var specs []genesisContract
	if err := opts.ReadOptions(optKey, &specs); err != nil {
		return err
	}
	bucket := NewContractBucket()
	for i, spec := range specs {
		contract := &Contract{
			Metadata:         &soteria.Metadata{Schema: 1},
			Admin:            spec.Admin,
			Members:          spec.Members,
			Threshold:        spec.Threshold,
			ProposalLifetime: spec.ProposalLifetime,
		}
		if _, err := bucket.Create(kv, contract); err != nil {
			return errors.Wrapf(err, "contract #%d", i)
		}
	}
	return nil
}
