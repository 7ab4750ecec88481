package multisig

import (
	"encoding/binary"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/migration"
	"github.com/AlphaR2/soteria/orm"
)

const (
	// packageName identifies this package in the schema registry.
	packageName = "multisig"

	// sequenceIDSize is the length of contract and proposal sequence
	// identifiers.
	sequenceIDSize = 8

	// proposalIDSize is contract ID plus proposal sequence.
	proposalIDSize = 2 * sequenceIDSize
)

// ContractBucket stores the member registries, keyed by an 8-byte
// sequence value.
type ContractBucket struct {
	migration.Bucket
	idSeq orm.Sequence
}

// NewContractBucket initializes a ContractBucket.
func NewContractBucket() ContractBucket {
	b := migration.NewBucket(packageName, "multisigs",
		orm.NewSimpleObj(nil, new(Contract)))
	return ContractBucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

// Create allocates the next contract ID, stores the contract under it
// and returns the ID.
func (b ContractBucket) Create(db soteria.KVStore, c *Contract) ([]byte, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire contract id")
	}
	if err := b.Save(db, orm.NewSimpleObj(id, c)); err != nil {
		return nil, err
	}
	return id, nil
}

// GetContract returns the contract with the given ID or ErrNotFound.
func (b ContractBucket) GetContract(db soteria.KVStore, contractID []byte) (*Contract, error) {
	obj, err := b.Get(db, contractID)
	if err != nil {
		return nil, errors.Wrap(err, "bucket lookup")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "contract %X", contractID)
	}
	c, ok := obj.Value().(*Contract)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type %T", obj.Value())
	}
	return c, nil
}

// Update overwrites the contract stored under the given ID.
func (b ContractBucket) Update(db soteria.KVStore, contractID []byte, c *Contract) error {
	return b.Save(db, orm.NewSimpleObj(contractID, c))
}

// ProposalBucket stores proposals under contractID || big-endian
// sequence keys, so that all proposals of one contract share a key
// prefix.
type ProposalBucket struct {
	migration.Bucket
}

// NewProposalBucket initializes a ProposalBucket.
func NewProposalBucket() ProposalBucket {
	return ProposalBucket{
		Bucket: migration.NewBucket(packageName, "proposals",
			orm.NewSimpleObj(nil, new(Proposal))),
	}
}

// proposalKey builds the composite proposal identifier.
func proposalKey(contractID []byte, seq uint64) []byte {
	key := make([]byte, proposalIDSize)
	copy(key, contractID)
	binary.BigEndian.PutUint64(key[sequenceIDSize:], seq)
	return key
}

// Create stores the proposal under the given contract and sequence
// value and returns the composite proposal ID.
func (b ProposalBucket) Create(db soteria.KVStore, contractID []byte, seq uint64, p *Proposal) ([]byte, error) {
	id := proposalKey(contractID, seq)
	if err := b.Save(db, orm.NewSimpleObj(id, p)); err != nil {
		return nil, err
	}
	return id, nil
}

// GetProposal returns the proposal with the given composite ID or
// ErrNotFound.
func (b ProposalBucket) GetProposal(db soteria.KVStore, proposalID []byte) (*Proposal, error) {
	if len(proposalID) != proposalIDSize {
		return nil, errors.Wrapf(errors.ErrInput, "proposal id must be %d bytes", proposalIDSize)
	}
	obj, err := b.Get(db, proposalID)
	if err != nil {
		return nil, errors.Wrap(err, "bucket lookup")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "proposal %X", proposalID)
	}
	p, ok := obj.Value().(*Proposal)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type %T", obj.Value())
	}
	return p, nil
}

// Update overwrites the proposal stored under the given ID.
func (b ProposalBucket) Update(db soteria.KVStore, proposalID []byte, p *Proposal) error {
	return b.Save(db, orm.NewSimpleObj(proposalID, p))
}

// VoteBucket stores the current decision of every voter, keyed by
// proposalID || voter address so all votes of a proposal share a key
// prefix.
type VoteBucket struct {
	migration.Bucket
}

// NewVoteBucket initializes a VoteBucket.
func NewVoteBucket() VoteBucket {
	return VoteBucket{
		Bucket: migration.NewBucket(packageName, "votes",
			orm.NewSimpleObj(nil, new(Vote))),
	}
}

func voteKey(proposalID []byte, voter soteria.Address) []byte {
	key := make([]byte, 0, len(proposalID)+len(voter))
	key = append(key, proposalID...)
	return append(key, voter...)
}

// GetVote returns the vote of the given member on the given proposal,
// or nil when the member has not voted yet.
func (b VoteBucket) GetVote(db soteria.KVStore, proposalID []byte, voter soteria.Address) (*Vote, error) {
	obj, err := b.Get(db, voteKey(proposalID, voter))
	if err != nil {
		return nil, errors.Wrap(err, "bucket lookup")
	}
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	v, ok := obj.Value().(*Vote)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type %T", obj.Value())
	}
	return v, nil
}

// SaveVote upserts the decision of one voter on one proposal.
func (b VoteBucket) SaveVote(db soteria.KVStore, proposalID []byte, v *Vote) error {
	return b.Save(db, orm.NewSimpleObj(voteKey(proposalID, v.Voter), v))
}
