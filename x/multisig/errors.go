package multisig

import (
	"github.com/AlphaR2/soteria/errors"
)

// multisig reserves the 1030-1039 code space.
var (
	// ErrNotMember is returned when the acting identity is outside the
	// relevant member set.
	ErrNotMember = errors.Register(1030, "not a member")

	// ErrInvalidThreshold is returned when a threshold is zero or
	// exceeds the member count.
	ErrInvalidThreshold = errors.Register(1031, "invalid threshold")

	// ErrDuplicateMember is returned when a member set contains the
	// same address more than once.
	ErrDuplicateMember = errors.Register(1032, "duplicate member")

	// ErrInvalidPayload is returned when a proposal payload is
	// malformed.
	ErrInvalidPayload = errors.Register(1033, "invalid payload")

	// ErrProposalNotOpen is returned when voting on a proposal that
	// left the Open state.
	ErrProposalNotOpen = errors.Register(1034, "proposal not open")

	// ErrProposalNotApproved is returned when executing a proposal
	// that is not in the Approved state.
	ErrProposalNotApproved = errors.Register(1035, "proposal not approved")

	// ErrAlreadyExecuted is returned when executing a proposal a
	// second time.
	ErrAlreadyExecuted = errors.Register(1036, "already executed")

	// ErrPaused is returned when operating on a contract that the
	// admin has paused.
	ErrPaused = errors.Register(1037, "contract paused")

	// ErrNotProposer is returned when someone other than the proposer
	// or the contract admin cancels a proposal.
	ErrNotProposer = errors.Register(1038, "not the proposer")
)
