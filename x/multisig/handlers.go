package multisig

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/migration"
	"github.com/AlphaR2/soteria/x"
	"github.com/AlphaR2/soteria/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createContractCost int64 = 300
	createProposalCost int64 = 300
	voteCost           int64 = 100
	executeCost        int64 = 500
	cancelProposalCost int64 = 100
	togglePauseCost    int64 = 100
)

const (
	tagAction     = "action"
	tagProposalID = "proposal-id"
	tagStatus     = "proposal-status"
)

// InstructionDecoder turns the raw bytes of an InstructionPayload
// into a message the application can route.
type InstructionDecoder func(raw []byte) (soteria.Msg, error)

// RegisterRoutes will instantiate and register all handlers in this
// package. The executor and decoder may be nil when the application
// does not support instruction payloads.
func RegisterRoutes(r soteria.Registry, auth x.Authenticator, control cash.Controller, dec InstructionDecoder, executor soteria.Deliverer) {
	r = migration.SchemaMigratingRegistry(packageName, r)

	contracts := NewContractBucket()
	proposals := NewProposalBucket()
	votes := NewVoteBucket()

	r.Handle(&CreateContractMsg{}, CreateContractHandler{
		auth:      auth,
		contracts: contracts,
	})
	r.Handle(&CreateProposalMsg{}, CreateProposalHandler{
		auth:      auth,
		contracts: contracts,
		proposals: proposals,
	})
	r.Handle(&VoteMsg{}, VoteHandler{
		auth:      auth,
		contracts: contracts,
		proposals: proposals,
		votes:     votes,
	})
	r.Handle(&ExecuteMsg{}, ExecuteHandler{
		auth:      auth,
		contracts: contracts,
		proposals: proposals,
		control:   control,
		decoder:   dec,
		executor:  executor,
	})
	r.Handle(&CancelProposalMsg{}, CancelProposalHandler{
		auth:      auth,
		contracts: contracts,
		proposals: proposals,
	})
	r.Handle(&TogglePauseMsg{}, TogglePauseHandler{
		auth:      auth,
		contracts: contracts,
	})
}

// RegisterQuery registers the buckets for querying.
func RegisterQuery(qr soteria.QueryRouter) {
	NewContractBucket().Register("multisigs", qr)
	NewProposalBucket().Register("proposals", qr)
	NewVoteBucket().Register("votes", qr)
}

// CreateContractHandler initializes member registries.
type CreateContractHandler struct {
	auth      x.Authenticator
	contracts ContractBucket
}

var _ soteria.Handler = CreateContractHandler{}

// Check validates the contract parameters.
func (h CreateContractHandler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &soteria.CheckResult{GasAllocated: createContractCost}, nil
}

// Deliver stores a new contract and returns its 8-byte ID in the
// result data. The main signer becomes the contract admin.
func (h CreateContractHandler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	msg, admin, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	contract := &Contract{
		Metadata:         &soteria.Metadata{Schema: 1},
		Admin:            admin,
		Members:          msg.Members,
		Threshold:        msg.Threshold,
		ProposalLifetime: msg.ProposalLifetime,
		ProposalCount:    0,
	}
	id, err := h.contracts.Create(db, contract)
	if err != nil {
		return nil, errors.Wrap(err, "create contract")
	}
	return &soteria.DeliverResult{
		Data: id,
		Tags: []common.KVPair{
			{Key: []byte(tagAction), Value: []byte("create-contract")},
		},
	}, nil
}

func (h CreateContractHandler) validate(ctx soteria.Context, tx soteria.Tx) (*CreateContractMsg, soteria.Address, error) {
	var msg CreateContractMsg
	if err := soteria.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	admin := x.MainSigner(ctx, h.auth)
	if admin == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, admin.Address(), nil
}

// CreateProposalHandler opens proposals under existing contracts.
type CreateProposalHandler struct {
	auth      x.Authenticator
	contracts ContractBucket
	proposals ProposalBucket
}

var _ soteria.Handler = CreateProposalHandler{}

// Check validates the proposal against the current contract state.
func (h CreateProposalHandler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &soteria.CheckResult{GasAllocated: createProposalCost}, nil
}

// Deliver snapshots the contract into a new Open proposal and
// returns the composite proposal ID in the result data.
func (h CreateProposalHandler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	msg, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	blockTime, err := soteria.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	now := soteria.AsUnixTime(blockTime)
	var expiresAt soteria.UnixTime
	if contract.ProposalLifetime > 0 {
		expiresAt = now.Add(contract.ProposalLifetime.Duration())
	}

	proposal := &Proposal{
		Metadata:       &soteria.Metadata{Schema: 1},
		ContractID:     msg.ContractID,
		Proposer:       x.MainSigner(ctx, h.auth).Address(),
		Payload:        msg.Payload,
		Status:         StatusOpen,
		SubmissionTime: now,
		ExpiresAt:      expiresAt,
		Members:        copyAddrs(contract.Members),
		Threshold:      contract.Threshold,
	}

	// The sequence bump and the proposal share the transaction, IDs
	// stay gap-free.
	contract.ProposalCount++
	if err := h.contracts.Update(db, msg.ContractID, contract); err != nil {
		return nil, errors.Wrap(err, "update contract")
	}
	id, err := h.proposals.Create(db, msg.ContractID, contract.ProposalCount, proposal)
	if err != nil {
		return nil, errors.Wrap(err, "create proposal")
	}

	return &soteria.DeliverResult{
		Data: id,
		Tags: []common.KVPair{
			{Key: []byte(tagAction), Value: []byte("create-proposal")},
			{Key: []byte(tagProposalID), Value: id},
		},
	}, nil
}

func (h CreateProposalHandler) validate(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*CreateProposalMsg, *Contract, error) {
	var msg CreateProposalMsg
	if err := soteria.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	contract, err := h.contracts.GetContract(db, msg.ContractID)
	if err != nil {
		return nil, nil, err
	}
	if contract.Paused {
		return nil, nil, errors.Wrapf(ErrPaused, "contract %X", msg.ContractID)
	}

	proposer := x.MainSigner(ctx, h.auth)
	if proposer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if !contract.IsMember(proposer.Address()) {
		return nil, nil, errors.Wrapf(ErrNotMember, "%s", proposer.Address())
	}

	if transfer, ok := msg.Payload.(*TransferPayload); ok {
		treasury := MultiSigCondition(msg.ContractID).Address()
		if transfer.Destination.Equals(treasury) {
			return nil, nil, errors.Wrap(ErrInvalidPayload, "transfer to the treasury itself")
		}
	}
	return &msg, contract, nil
}

// VoteHandler records member decisions and eagerly resolves the
// proposal status.
type VoteHandler struct {
	auth      x.Authenticator
	contracts ContractBucket
	proposals ProposalBucket
	votes     VoteBucket
}

var _ soteria.Handler = VoteHandler{}

// Check validates the vote against the proposal snapshot.
func (h VoteHandler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &soteria.CheckResult{GasAllocated: voteCost}, nil
}

// Deliver upserts the vote, retallies and persists any resulting
// status transition. The updated status is returned in the result
// data.
func (h VoteHandler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	msg, proposal, voter, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Casting again replaces the previous decision, a member holds at
	// most one vote per proposal.
	prior, err := h.votes.GetVote(db, msg.ProposalID, voter)
	if err != nil {
		return nil, errors.Wrap(err, "get prior vote")
	}
	if prior != nil {
		if err := proposal.UndoCountVote(prior.Selected); err != nil {
			return nil, err
		}
	}
	if err := proposal.CountVote(msg.Selected); err != nil {
		return nil, err
	}
	vote := &Vote{
		Metadata: &soteria.Metadata{Schema: 1},
		Voter:    voter,
		Selected: msg.Selected,
	}
	if err := h.votes.SaveVote(db, msg.ProposalID, vote); err != nil {
		return nil, errors.Wrap(err, "save vote")
	}

	proposal.Rebalance()
	if err := h.proposals.Update(db, msg.ProposalID, proposal); err != nil {
		return nil, errors.Wrap(err, "update proposal")
	}

	return &soteria.DeliverResult{
		Data: []byte{byte(proposal.Status)},
		Tags: []common.KVPair{
			{Key: []byte(tagAction), Value: []byte("vote")},
			{Key: []byte(tagProposalID), Value: msg.ProposalID},
			{Key: []byte(tagStatus), Value: []byte(proposal.Status.String())},
		},
	}, nil
}

func (h VoteHandler) validate(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*VoteMsg, *Proposal, soteria.Address, error) {
	var msg VoteMsg
	if err := soteria.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	proposal, err := h.proposals.GetProposal(db, msg.ProposalID)
	if err != nil {
		return nil, nil, nil, err
	}
	contract, err := h.contracts.GetContract(db, proposal.ContractID)
	if err != nil {
		return nil, nil, nil, err
	}
	if contract.Paused {
		return nil, nil, nil, errors.Wrapf(ErrPaused, "contract %X", proposal.ContractID)
	}

	if proposal.Status == StatusOpen && isProposalExpired(ctx, proposal) {
		// Expiry is evaluated against the block time on every touch.
		// The failing transaction is rolled back, so the stored status
		// stays Open and later touches must run the same check.
		return nil, nil, nil, errors.Wrapf(errors.ErrExpired, "proposal %X", msg.ProposalID)
	}
	if proposal.Status != StatusOpen {
		return nil, nil, nil, errors.Wrapf(ErrProposalNotOpen, "status %s", proposal.Status)
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	voter := signer.Address()
	if !proposal.IsMember(voter) {
		return nil, nil, nil, errors.Wrapf(ErrNotMember, "%s", voter)
	}
	return &msg, proposal, voter, nil
}

// ExecuteHandler applies approved proposals exactly once.
type ExecuteHandler struct {
	auth      x.Authenticator
	contracts ContractBucket
	proposals ProposalBucket
	control   cash.Controller
	decoder   InstructionDecoder
	executor  soteria.Deliverer
}

var _ soteria.Handler = ExecuteHandler{}

// Check validates the execution preconditions.
func (h ExecuteHandler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &soteria.CheckResult{GasAllocated: executeCost}, nil
}

// Deliver applies the payload and seals the proposal. Any payload
// failure aborts the transaction and leaves the proposal Approved, so
// a transient failure such as an underfunded treasury can be retried
// after the treasury is topped up.
func (h ExecuteHandler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	msg, proposal, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	res, err := h.applyPayload(ctx, db, proposal)
	if err != nil {
		return nil, err
	}

	proposal.Status = StatusExecuted
	if err := h.proposals.Update(db, msg.ProposalID, proposal); err != nil {
		return nil, errors.Wrap(err, "update proposal")
	}

	res.Tags = append(res.Tags,
		common.KVPair{Key: []byte(tagAction), Value: []byte("execute")},
		common.KVPair{Key: []byte(tagProposalID), Value: msg.ProposalID},
		common.KVPair{Key: []byte(tagStatus), Value: []byte(StatusExecuted.String())},
	)
	return res, nil
}

func (h ExecuteHandler) validate(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*ExecuteMsg, *Proposal, error) {
	var msg ExecuteMsg
	if err := soteria.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	proposal, err := h.proposals.GetProposal(db, msg.ProposalID)
	if err != nil {
		return nil, nil, err
	}
	contract, err := h.contracts.GetContract(db, proposal.ContractID)
	if err != nil {
		return nil, nil, err
	}
	if contract.Paused {
		return nil, nil, errors.Wrapf(ErrPaused, "contract %X", proposal.ContractID)
	}

	switch {
	case proposal.Status == StatusExecuted:
		return nil, nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %X", msg.ProposalID)
	case proposal.Status == StatusOpen && isProposalExpired(ctx, proposal):
		// Same lazy check as voting, nothing is written on failure.
		return nil, nil, errors.Wrapf(errors.ErrExpired, "proposal %X", msg.ProposalID)
	case proposal.Status != StatusApproved:
		return nil, nil, errors.Wrapf(ErrProposalNotApproved, "status %s", proposal.Status)
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if !proposal.IsMember(signer.Address()) {
		return nil, nil, errors.Wrapf(ErrNotMember, "%s", signer.Address())
	}
	return &msg, proposal, nil
}

// applyPayload dispatches on the payload variant. Every variant must
// be handled here, an unknown payload is a hard failure.
func (h ExecuteHandler) applyPayload(ctx soteria.Context, db soteria.KVStore, proposal *Proposal) (*soteria.DeliverResult, error) {
	treasury := MultiSigCondition(proposal.ContractID).Address()

	switch payload := proposal.Payload.(type) {
	case *TransferPayload:
		// Balance is checked at execution time inside MoveCoins, an
		// approval never guarantees funds.
		err := h.control.MoveCoins(db, treasury, payload.Destination, payload.Amount)
		if err != nil {
			return nil, errors.Wrap(err, "treasury transfer")
		}
		return &soteria.DeliverResult{}, nil

	case *UpdateMembersPayload:
		contract, err := h.contracts.GetContract(db, proposal.ContractID)
		if err != nil {
			return nil, err
		}
		contract.Members = copyAddrs(payload.Members)
		contract.Threshold = payload.Threshold
		contract.ProposalLifetime = payload.ProposalLifetime
		if err := h.contracts.Update(db, proposal.ContractID, contract); err != nil {
			return nil, errors.Wrap(err, "update contract")
		}
		return &soteria.DeliverResult{}, nil

	case *InstructionPayload:
		if h.decoder == nil || h.executor == nil {
			return nil, errors.Wrap(ErrInvalidPayload, "instruction payloads not supported")
		}
		instMsg, err := h.decoder(payload.RawInstruction)
		if err != nil {
			return nil, errors.Wrap(err, "decode instruction")
		}
		// The instruction runs with the contract condition, the only
		// way the members act as the contract.
		ctx = withMultisig(ctx, proposal.ContractID)
		return h.executor.Deliver(ctx, db, &instructionTx{msg: instMsg})

	default:
		return nil, errors.Wrapf(ErrInvalidPayload, "unknown payload %T", proposal.Payload)
	}
}

// CancelProposalHandler withdraws open proposals. The proposer can
// retract their own proposal and the admin can cancel any open
// proposal under the contract.
type CancelProposalHandler struct {
	auth      x.Authenticator
	contracts ContractBucket
	proposals ProposalBucket
}

var _ soteria.Handler = CancelProposalHandler{}

// Check validates the cancellation preconditions.
func (h CancelProposalHandler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &soteria.CheckResult{GasAllocated: cancelProposalCost}, nil
}

// Deliver closes the proposal. A cancelled proposal is recorded as
// Rejected, the terminal state for proposals that will never execute.
func (h CancelProposalHandler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	msg, proposal, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	proposal.Status = StatusRejected
	if err := h.proposals.Update(db, msg.ProposalID, proposal); err != nil {
		return nil, errors.Wrap(err, "update proposal")
	}

	return &soteria.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte(tagAction), Value: []byte("cancel-proposal")},
			{Key: []byte(tagProposalID), Value: msg.ProposalID},
			{Key: []byte(tagStatus), Value: []byte(proposal.Status.String())},
		},
	}, nil
}

func (h CancelProposalHandler) validate(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*CancelProposalMsg, *Proposal, error) {
	var msg CancelProposalMsg
	if err := soteria.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	proposal, err := h.proposals.GetProposal(db, msg.ProposalID)
	if err != nil {
		return nil, nil, err
	}
	// Cancellation stays available while the contract is paused, the
	// admin must be able to clean up during an incident.
	if proposal.Status == StatusOpen && isProposalExpired(ctx, proposal) {
		return nil, nil, errors.Wrapf(errors.ErrExpired, "proposal %X", msg.ProposalID)
	}
	if proposal.Status != StatusOpen {
		return nil, nil, errors.Wrapf(ErrProposalNotOpen, "status %s", proposal.Status)
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if !proposal.Proposer.Equals(signer.Address()) {
		contract, err := h.contracts.GetContract(db, proposal.ContractID)
		if err != nil {
			return nil, nil, err
		}
		if !contract.IsAdmin(signer.Address()) {
			return nil, nil, errors.Wrapf(ErrNotProposer, "%s", signer.Address())
		}
	}
	return &msg, proposal, nil
}

// TogglePauseHandler flips the emergency pause flag of a contract.
type TogglePauseHandler struct {
	auth      x.Authenticator
	contracts ContractBucket
}

var _ soteria.Handler = TogglePauseHandler{}

// Check validates the toggle preconditions.
func (h TogglePauseHandler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &soteria.CheckResult{GasAllocated: togglePauseCost}, nil
}

// Deliver flips the pause flag and returns the new state in the
// result data, 1 for paused.
func (h TogglePauseHandler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	msg, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	contract.Paused = !contract.Paused
	if err := h.contracts.Update(db, msg.ContractID, contract); err != nil {
		return nil, errors.Wrap(err, "update contract")
	}

	state := []byte{0}
	if contract.Paused {
		state[0] = 1
	}
	return &soteria.DeliverResult{
		Data: state,
		Tags: []common.KVPair{
			{Key: []byte(tagAction), Value: []byte("toggle-pause")},
		},
	}, nil
}

func (h TogglePauseHandler) validate(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*TogglePauseMsg, *Contract, error) {
	var msg TogglePauseMsg
	if err := soteria.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	contract, err := h.contracts.GetContract(db, msg.ContractID)
	if err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if !contract.IsAdmin(signer.Address()) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "only the admin may pause: %s", signer.Address())
	}
	return &msg, contract, nil
}

// isProposalExpired reports whether an expiry window is set and has
// elapsed.
func isProposalExpired(ctx soteria.Context, p *Proposal) bool {
	return p.ExpiresAt != 0 && soteria.IsExpired(ctx, p.ExpiresAt)
}

// instructionTx adapts a decoded instruction message to the Tx
// interface for the executor.
type instructionTx struct {
	msg soteria.Msg
}

var _ soteria.Tx = (*instructionTx)(nil)

func (tx *instructionTx) GetMsg() (soteria.Msg, error) {
	return tx.msg, nil
}

func (tx *instructionTx) Marshal() ([]byte, error) {
	return tx.msg.Marshal()
}

func (tx *instructionTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "instruction tx cannot be deserialized")
}
