package multisig

import (
	"context"
	"testing"
	"time"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/app"
	"github.com/AlphaR2/soteria/coin"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/migration"
	"github.com/AlphaR2/soteria/soteriatest"
	"github.com/AlphaR2/soteria/soteriatest/assert"
	"github.com/AlphaR2/soteria/store"
	"github.com/AlphaR2/soteria/x/cash"
	"github.com/AlphaR2/soteria/x/utils"
)

// testEnv wires all multisig handlers against a shared in-memory
// store, with three member keys ready to act.
type testEnv struct {
	db   soteria.KVStore
	auth *soteriatest.CtxAuth

	x soteria.Condition
	y soteria.Condition
	z soteria.Condition

	contracts ContractBucket
	proposals ProposalBucket
	votes     VoteBucket
	control   cash.BaseController

	createContract CreateContractHandler
	createProposal CreateProposalHandler
	vote           VoteHandler
	execute        ExecuteHandler
	cancel         CancelProposalHandler
	togglePause    TogglePauseHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := store.MemStore()
	migration.MustInitPkg(db, packageName, "cash")

	auth := &soteriatest.CtxAuth{Key: "auth"}
	contracts := NewContractBucket()
	proposals := NewProposalBucket()
	votes := NewVoteBucket()
	control := cash.NewController(cash.NewBucket())

	return &testEnv{
		db:        db,
		auth:      auth,
		x:         soteriatest.NewCondition(),
		y:         soteriatest.NewCondition(),
		z:         soteriatest.NewCondition(),
		contracts: contracts,
		proposals: proposals,
		votes:     votes,
		control:   control,
		createContract: CreateContractHandler{
			auth:      auth,
			contracts: contracts,
		},
		createProposal: CreateProposalHandler{
			auth:      auth,
			contracts: contracts,
			proposals: proposals,
		},
		vote: VoteHandler{
			auth:      auth,
			contracts: contracts,
			proposals: proposals,
			votes:     votes,
		},
		execute: ExecuteHandler{
			auth:      auth,
			contracts: contracts,
			proposals: proposals,
			control:   control,
		},
		cancel: CancelProposalHandler{
			auth:      auth,
			contracts: contracts,
			proposals: proposals,
		},
		togglePause: TogglePauseHandler{
			auth:      auth,
			contracts: contracts,
		},
	}
}

// asCtx returns a context carrying the block time and the signer
// condition.
func (e *testEnv) asCtx(signer soteria.Condition, blockTime time.Time) soteria.Context {
	ctx := soteria.WithBlockTime(context.Background(), blockTime)
	return e.auth.SetConditions(ctx, signer)
}

var t0 = time.Unix(1500000000, 0)

// newContract creates a contract through the handler and returns its
// ID.
func (e *testEnv) newContract(t *testing.T, threshold uint32, lifetime soteria.UnixDuration) []byte {
	t.Helper()

	tx := &soteriatest.Tx{Msg: &CreateContractMsg{
		Metadata:         &soteria.Metadata{Schema: 1},
		Members:          []soteria.Address{e.x.Address(), e.y.Address(), e.z.Address()},
		Threshold:        threshold,
		ProposalLifetime: lifetime,
	}}
	res, err := e.createContract.Deliver(e.asCtx(e.x, t0), e.db, tx)
	assert.Nil(t, err)
	assert.Equal(t, sequenceIDSize, len(res.Data))
	return res.Data
}

// propose opens a proposal through the handler and returns its ID.
func (e *testEnv) propose(t *testing.T, signer soteria.Condition, contractID []byte, payload Payload) []byte {
	t.Helper()

	id, err := e.tryPropose(signer, contractID, payload)
	assert.Nil(t, err)
	return id
}

func (e *testEnv) tryPropose(signer soteria.Condition, contractID []byte, payload Payload) ([]byte, error) {
	tx := &soteriatest.Tx{Msg: &CreateProposalMsg{
		Metadata:   &soteria.Metadata{Schema: 1},
		ContractID: contractID,
		Payload:    payload,
	}}
	res, err := e.createProposal.Deliver(e.asCtx(signer, t0), e.db, tx)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (e *testEnv) castVote(signer soteria.Condition, proposalID []byte, option VoteOption, blockTime time.Time) (Status, error) {
	tx := &soteriatest.Tx{Msg: &VoteMsg{
		Metadata:   &soteria.Metadata{Schema: 1},
		ProposalID: proposalID,
		Selected:   option,
	}}
	res, err := e.vote.Deliver(e.asCtx(signer, blockTime), e.db, tx)
	if err != nil {
		return StatusInvalid, err
	}
	return Status(res.Data[0]), nil
}

func (e *testEnv) runExecute(signer soteria.Condition, proposalID []byte, blockTime time.Time) error {
	tx := &soteriatest.Tx{Msg: &ExecuteMsg{
		Metadata:   &soteria.Metadata{Schema: 1},
		ProposalID: proposalID,
	}}
	_, err := e.execute.Deliver(e.asCtx(signer, blockTime), e.db, tx)
	return err
}

func (e *testEnv) runCancel(signer soteria.Condition, proposalID []byte, blockTime time.Time) error {
	tx := &soteriatest.Tx{Msg: &CancelProposalMsg{
		Metadata:   &soteria.Metadata{Schema: 1},
		ProposalID: proposalID,
	}}
	_, err := e.cancel.Deliver(e.asCtx(signer, blockTime), e.db, tx)
	return err
}

func (e *testEnv) runTogglePause(signer soteria.Condition, contractID []byte) error {
	tx := &soteriatest.Tx{Msg: &TogglePauseMsg{
		Metadata:   &soteria.Metadata{Schema: 1},
		ContractID: contractID,
	}}
	_, err := e.togglePause.Deliver(e.asCtx(signer, t0), e.db, tx)
	return err
}

// fund credits the contract treasury directly.
func (e *testEnv) fund(t *testing.T, contractID []byte, amount coin.Coin) {
	t.Helper()
	treasury := MultiSigCondition(contractID).Address()
	assert.Nil(t, e.control.IssueCoins(e.db, treasury, amount))
}

func (e *testEnv) balance(t *testing.T, addr soteria.Address) coin.Coins {
	t.Helper()
	cs, err := e.control.Balance(e.db, addr)
	if err != nil {
		assert.IsErr(t, errors.ErrNotFound, err)
		return nil
	}
	return cs
}

func TestCreateContract(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)

	contract, err := e.contracts.GetContract(e.db, id)
	assert.Nil(t, err)
	assert.Equal(t, uint32(2), contract.Threshold)
	assert.Equal(t, 3, len(contract.Members))
	assert.Equal(t, uint64(0), contract.ProposalCount)
	// The creating signer is recorded as admin.
	assert.Equal(t, e.x.Address(), contract.Admin)

	// A second contract gets the next sequence value.
	id2 := e.newContract(t, 1, 0)
	if string(id) == string(id2) {
		t.Fatal("contract ids must be unique")
	}
}

func TestCreateContractRequiresSigner(t *testing.T) {
	e := newTestEnv(t)

	tx := &soteriatest.Tx{Msg: &CreateContractMsg{
		Metadata:  &soteria.Metadata{Schema: 1},
		Members:   []soteria.Address{e.x.Address()},
		Threshold: 1,
	}}
	ctx := soteria.WithBlockTime(context.Background(), t0)
	_, err := e.createContract.Deliver(ctx, e.db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestCreateContractInvalidThreshold(t *testing.T) {
	e := newTestEnv(t)

	tx := &soteriatest.Tx{Msg: &CreateContractMsg{
		Metadata:  &soteria.Metadata{Schema: 1},
		Members:   []soteria.Address{e.x.Address()},
		Threshold: 2,
	}}
	_, err := e.createContract.Deliver(e.asCtx(e.x, t0), e.db, tx)
	assert.IsErr(t, ErrInvalidThreshold, err)
}

func TestTransferProposalLifecycle(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)
	e.fund(t, id, coin.NewCoin(1000, 0, "IOV"))
	dest := soteriatest.NewCondition().Address()

	propID := e.propose(t, e.x, id, &TransferPayload{
		Destination: dest,
		Amount:      coin.NewCoin(100, 0, "IOV"),
	})

	// One approval is below the threshold, the proposal stays open.
	status, err := e.castVote(e.x, propID, VoteApprove, t0)
	assert.Nil(t, err)
	assert.Equal(t, StatusOpen, status)

	// Execution before approval must fail.
	assert.IsErr(t, ErrProposalNotApproved, e.runExecute(e.x, propID, t0))

	// The second approval reaches the threshold.
	status, err = e.castVote(e.y, propID, VoteApprove, t0)
	assert.Nil(t, err)
	assert.Equal(t, StatusApproved, status)

	// Votes are frozen once the proposal leaves Open.
	_, err = e.castVote(e.z, propID, VoteReject, t0)
	assert.IsErr(t, ErrProposalNotOpen, err)

	assert.Nil(t, e.runExecute(e.z, propID, t0))

	treasury := MultiSigCondition(id).Address()
	wantTreasury, err := coin.CombineCoins(coin.NewCoin(900, 0, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, wantTreasury, e.balance(t, treasury))
	wantDest, err := coin.CombineCoins(coin.NewCoin(100, 0, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, wantDest, e.balance(t, dest))

	proposal, err := e.proposals.GetProposal(e.db, propID)
	assert.Nil(t, err)
	assert.Equal(t, StatusExecuted, proposal.Status)

	// Replay protection: a second execute must fail and must not
	// double-debit.
	assert.IsErr(t, ErrAlreadyExecuted, e.runExecute(e.x, propID, t0))
	assert.Equal(t, wantTreasury, e.balance(t, treasury))
}

func TestEarlyRejection(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)

	propID := e.propose(t, e.x, id, &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(100, 0, "IOV"),
	})

	status, err := e.castVote(e.x, propID, VoteApprove, t0)
	assert.Nil(t, err)
	assert.Equal(t, StatusOpen, status)

	// One rejection leaves the outcome undecided, Y could still
	// complete the quorum.
	status, err = e.castVote(e.z, propID, VoteReject, t0)
	assert.Nil(t, err)
	assert.Equal(t, StatusOpen, status)

	// The second rejection makes the quorum unreachable.
	status, err = e.castVote(e.y, propID, VoteReject, t0)
	assert.Nil(t, err)
	assert.Equal(t, StatusRejected, status)

	// Terminal state, execution is impossible.
	assert.IsErr(t, ErrProposalNotApproved, e.runExecute(e.x, propID, t0))
}

func TestVoteUpsert(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 3, 0)

	propID := e.propose(t, e.x, id, &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(1, 0, "IOV"),
	})

	_, err := e.castVote(e.x, propID, VoteApprove, t0)
	assert.Nil(t, err)

	// Changing the decision replaces the prior vote instead of
	// stacking a second one.
	_, err = e.castVote(e.x, propID, VoteReject, t0)
	assert.Nil(t, err)

	proposal, err := e.proposals.GetProposal(e.db, propID)
	assert.Nil(t, err)
	assert.Equal(t, Tally{Approvals: 0, Rejections: 1}, proposal.Tally)

	vote, err := e.votes.GetVote(e.db, propID, e.x.Address())
	assert.Nil(t, err)
	assert.Equal(t, VoteReject, vote.Selected)
}

func TestNonMemberRejected(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)
	stranger := soteriatest.NewCondition()

	payload := &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(1, 0, "IOV"),
	}

	// Proposal creation is a member privilege.
	_, err := e.tryPropose(stranger, id, payload)
	assert.IsErr(t, ErrNotMember, err)

	propID := e.propose(t, e.x, id, payload)

	// Voting is a member privilege.
	_, err = e.castVote(stranger, propID, VoteApprove, t0)
	assert.IsErr(t, ErrNotMember, err)

	// So is execution.
	_, err = e.castVote(e.x, propID, VoteApprove, t0)
	assert.Nil(t, err)
	status, err := e.castVote(e.y, propID, VoteApprove, t0)
	assert.Nil(t, err)
	assert.Equal(t, StatusApproved, status)
	assert.IsErr(t, ErrNotMember, e.runExecute(stranger, propID, t0))
}

func TestInsufficientFundsIsRetryable(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)
	e.fund(t, id, coin.NewCoin(50, 0, "IOV"))
	dest := soteriatest.NewCondition().Address()

	propID := e.propose(t, e.x, id, &TransferPayload{
		Destination: dest,
		Amount:      coin.NewCoin(100, 0, "IOV"),
	})
	_, err := e.castVote(e.x, propID, VoteApprove, t0)
	assert.Nil(t, err)
	_, err = e.castVote(e.y, propID, VoteApprove, t0)
	assert.Nil(t, err)

	// The treasury cannot cover the transfer right now.
	err = e.runExecute(e.x, propID, t0)
	assert.IsErr(t, cash.ErrInsufficientFunds, err)

	// The failure leaves the proposal Approved and the treasury
	// untouched.
	proposal, err := e.proposals.GetProposal(e.db, propID)
	assert.Nil(t, err)
	assert.Equal(t, StatusApproved, proposal.Status)
	treasury := MultiSigCondition(id).Address()
	want, err := coin.CombineCoins(coin.NewCoin(50, 0, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, want, e.balance(t, treasury))

	// After a top up the same proposal executes without re-voting.
	e.fund(t, id, coin.NewCoin(100, 0, "IOV"))
	assert.Nil(t, e.runExecute(e.x, propID, t0))

	proposal, err = e.proposals.GetProposal(e.db, propID)
	assert.Nil(t, err)
	assert.Equal(t, StatusExecuted, proposal.Status)
}

func TestProposalExpiry(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, soteria.AsUnixDuration(100*time.Second))

	propID := e.propose(t, e.x, id, &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(1, 0, "IOV"),
	})

	// Voting within the window works.
	_, err := e.castVote(e.x, propID, VoteApprove, t0)
	assert.Nil(t, err)

	// Voting after the window fails. The stored status stays Open
	// because a failing transaction cannot write, every later touch
	// repeats the same clock check.
	late := t0.Add(101 * time.Second)
	_, err = e.castVote(e.y, propID, VoteApprove, late)
	assert.IsErr(t, errors.ErrExpired, err)

	proposal, err := e.proposals.GetProposal(e.db, propID)
	assert.Nil(t, err)
	assert.Equal(t, StatusOpen, proposal.Status)

	// Expired proposals never execute.
	assert.IsErr(t, errors.ErrExpired, e.runExecute(e.x, propID, late))

	// And never resurrect: cancellation also observes the expiry.
	assert.IsErr(t, errors.ErrExpired, e.runCancel(e.x, propID, late))
}

func TestExpiredVoteLeavesNoTrace(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, soteria.AsUnixDuration(100*time.Second))

	propID := e.propose(t, e.x, id, &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(1, 0, "IOV"),
	})

	// Run the vote the way the application does, through a savepoint
	// that discards all writes of a failing transaction.
	handler := app.ChainDecorators(utils.NewSavepoint().OnDeliver()).WithHandler(e.vote)
	late := t0.Add(101 * time.Second)
	tx := &soteriatest.Tx{Msg: &VoteMsg{
		Metadata:   &soteria.Metadata{Schema: 1},
		ProposalID: propID,
		Selected:   VoteApprove,
	}}
	_, err := handler.Deliver(e.asCtx(e.y, late), e.db, tx)
	assert.IsErr(t, errors.ErrExpired, err)

	// The store is untouched: the status is still Open and no vote
	// was recorded.
	proposal, err := e.proposals.GetProposal(e.db, propID)
	assert.Nil(t, err)
	assert.Equal(t, StatusOpen, proposal.Status)
	vote, err := e.votes.GetVote(e.db, propID, e.y.Address())
	assert.Nil(t, err)
	if vote != nil {
		t.Fatalf("unexpected vote recorded: %+v", vote)
	}
}

func TestUpdateMembersViaProposal(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)
	w := soteriatest.NewCondition()

	// First proposal rewires the member set.
	updateID := e.propose(t, e.x, id, &UpdateMembersPayload{
		Members:   []soteria.Address{e.x.Address(), w.Address()},
		Threshold: 2,
	})
	// Second proposal snapshots the original member set.
	inFlightID := e.propose(t, e.x, id, &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(1, 0, "IOV"),
	})

	_, err := e.castVote(e.x, updateID, VoteApprove, t0)
	assert.Nil(t, err)
	_, err = e.castVote(e.y, updateID, VoteApprove, t0)
	assert.Nil(t, err)
	assert.Nil(t, e.runExecute(e.x, updateID, t0))

	contract, err := e.contracts.GetContract(e.db, id)
	assert.Nil(t, err)
	assert.Equal(t, []soteria.Address{e.x.Address(), w.Address()}, contract.Members)

	// Replaced members cannot create new proposals any more.
	_, err = e.tryPropose(e.y, id, &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(1, 0, "IOV"),
	})
	assert.IsErr(t, ErrNotMember, err)

	// The in-flight proposal keeps its snapshot: Y and Z still vote.
	_, err = e.castVote(e.y, inFlightID, VoteApprove, t0)
	assert.Nil(t, err)
	status, err := e.castVote(e.z, inFlightID, VoteApprove, t0)
	assert.Nil(t, err)
	assert.Equal(t, StatusApproved, status)
	// But the new member W is outside the snapshot.
	_, err = e.castVote(w, inFlightID, VoteApprove, t0)
	assert.IsErr(t, ErrProposalNotOpen, err)
}

func TestInstructionPayloadExecution(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)
	e.fund(t, id, coin.NewCoin(500, 0, "IOV"))
	treasury := MultiSigCondition(id).Address()
	dest := soteriatest.NewCondition().Address()

	// The instruction is a serialized cash send from the treasury,
	// executable only because the execute path grants the contract
	// condition.
	send := &cash.SendMsg{
		Metadata:    &soteria.Metadata{Schema: 1},
		Source:      treasury,
		Destination: dest,
		Amount:      coin.NewCoinp(120, 0, "IOV"),
	}
	raw, err := send.Marshal()
	assert.Nil(t, err)

	e.execute.decoder = func(raw []byte) (soteria.Msg, error) {
		var msg cash.SendMsg
		if err := msg.Unmarshal(raw); err != nil {
			return nil, err
		}
		return &msg, nil
	}
	e.execute.executor = cash.NewSendHandler(Authenticate{}, e.control)

	propID := e.propose(t, e.x, id, &InstructionPayload{RawInstruction: raw})
	_, err = e.castVote(e.x, propID, VoteApprove, t0)
	assert.Nil(t, err)
	_, err = e.castVote(e.y, propID, VoteApprove, t0)
	assert.Nil(t, err)
	assert.Nil(t, e.runExecute(e.x, propID, t0))

	want, err := coin.CombineCoins(coin.NewCoin(120, 0, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, want, e.balance(t, dest))
}

func TestProposalIDsAreGapFree(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)

	payload := &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(1, 0, "IOV"),
	}
	first := e.propose(t, e.x, id, payload)
	second := e.propose(t, e.y, id, payload)

	assert.Equal(t, proposalKey(id, 1), first)
	assert.Equal(t, proposalKey(id, 2), second)

	contract, err := e.contracts.GetContract(e.db, id)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), contract.ProposalCount)
}

func TestCancelProposal(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)
	payload := &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(1, 0, "IOV"),
	}

	// The proposer can retract their own proposal.
	propID := e.propose(t, e.y, id, payload)
	assert.Nil(t, e.runCancel(e.y, propID, t0))

	proposal, err := e.proposals.GetProposal(e.db, propID)
	assert.Nil(t, err)
	assert.Equal(t, StatusRejected, proposal.Status)

	// Terminal, no votes and no second cancel.
	_, err = e.castVote(e.x, propID, VoteApprove, t0)
	assert.IsErr(t, ErrProposalNotOpen, err)
	assert.IsErr(t, ErrProposalNotOpen, e.runCancel(e.y, propID, t0))

	// The admin can cancel any open proposal, even one they did not
	// propose. X created the contract and is its admin.
	propID = e.propose(t, e.z, id, payload)
	assert.Nil(t, e.runCancel(e.x, propID, t0))

	// Other members cannot cancel foreign proposals.
	propID = e.propose(t, e.z, id, payload)
	assert.IsErr(t, ErrNotProposer, e.runCancel(e.y, propID, t0))
}

func TestTogglePause(t *testing.T) {
	e := newTestEnv(t)
	id := e.newContract(t, 2, 0)
	payload := &TransferPayload{
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoin(1, 0, "IOV"),
	}
	propID := e.propose(t, e.z, id, payload)

	// Only the admin may pause. X created the contract.
	assert.IsErr(t, errors.ErrUnauthorized, e.runTogglePause(e.y, id))
	assert.Nil(t, e.runTogglePause(e.x, id))

	contract, err := e.contracts.GetContract(e.db, id)
	assert.Nil(t, err)
	if !contract.Paused {
		t.Fatal("contract must be paused")
	}

	// A paused contract accepts no proposals, votes or executions.
	_, err = e.tryPropose(e.y, id, payload)
	assert.IsErr(t, ErrPaused, err)
	_, err = e.castVote(e.y, propID, VoteApprove, t0)
	assert.IsErr(t, ErrPaused, err)
	assert.IsErr(t, ErrPaused, e.runExecute(e.y, propID, t0))

	// Cancellation stays available during the pause.
	assert.Nil(t, e.runCancel(e.x, propID, t0))

	// Unpausing restores normal operation.
	assert.Nil(t, e.runTogglePause(e.x, id))
	_, err = e.tryPropose(e.y, id, payload)
	assert.Nil(t, err)
}

func TestContractSurvivesCommit(t *testing.T) {
	db, cleanup := soteriatest.CommitKVStore(t)
	defer cleanup()

	cache := db.CacheWrap()
	migration.MustInitPkg(cache, packageName)

	auth := &soteriatest.CtxAuth{Key: "auth"}
	handler := CreateContractHandler{
		auth:      auth,
		contracts: NewContractBucket(),
	}
	member := soteriatest.NewCondition()
	ctx := auth.SetConditions(soteria.WithBlockTime(context.Background(), t0), member)
	tx := &soteriatest.Tx{Msg: &CreateContractMsg{
		Metadata:  &soteria.Metadata{Schema: 1},
		Members:   []soteria.Address{member.Address()},
		Threshold: 1,
	}}
	res, err := handler.Deliver(ctx, cache, tx)
	assert.Nil(t, err)
	assert.Nil(t, cache.Write())

	if _, err := db.Commit(); err != nil {
		t.Fatalf("commit: %s", err)
	}

	// A fresh cache wrap over the committed state sees the contract.
	fresh := db.CacheWrap()
	contract, err := NewContractBucket().GetContract(fresh, res.Data)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), contract.Threshold)
}
