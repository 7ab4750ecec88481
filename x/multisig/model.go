package multisig

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/migration"
	"github.com/AlphaR2/soteria/orm"
)

func init() {
	migration.MustRegister(1, &Contract{}, migration.NoModification)
	migration.MustRegister(1, &Proposal{}, migration.NoModification)
	migration.MustRegister(1, &Vote{}, migration.NoModification)
}

// maxMembers bounds the member set so that tallying stays cheap and
// the threshold always fits in a uint32.
const maxMembers = 128

// Contract is the member registry: the canonical member set, the
// approval threshold and the proposal sequence counter.
type Contract struct {
	Metadata *soteria.Metadata `json:"metadata"`
	// Admin is the address that created the contract. The admin can
	// pause the contract and cancel any open proposal under it. Admin
	// rights do not include membership.
	Admin soteria.Address `json:"admin"`
	// Members is the ordered set of authorized signers.
	Members []soteria.Address `json:"members"`
	// Threshold is the number of approvals required for a proposal to
	// pass. Always 1 <= Threshold <= len(Members).
	Threshold uint32 `json:"threshold"`
	// ProposalLifetime is the validity window for new proposals. Zero
	// disables expiry.
	ProposalLifetime soteria.UnixDuration `json:"proposal_lifetime"`
	// ProposalCount is a gap-free monotonic counter, incremented for
	// every proposal created under this contract.
	ProposalCount uint64 `json:"proposal_count"`
	// Paused blocks proposal creation, voting and execution until the
	// admin unpauses the contract.
	Paused bool `json:"paused"`
}

var _ orm.CloneableData = (*Contract)(nil)

// GetMetadata implements the Migratable interface.
func (c *Contract) GetMetadata() *soteria.Metadata {
	return c.Metadata
}

// Marshal serializes the contract for storage.
func (c *Contract) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

// Unmarshal deserializes the contract from its stored form.
func (c *Contract) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// Validate returns an error unless the member set and threshold are
// coherent.
func (c *Contract) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", c.Metadata.Validate())
	err = errors.AppendField(err, "Admin", c.Admin.Validate())
	err = errors.AppendField(err, "Members", validateMembers(c.Members))
	err = errors.AppendField(err, "Threshold", validateThreshold(c.Threshold, len(c.Members)))
	err = errors.AppendField(err, "ProposalLifetime", c.ProposalLifetime.Validate())
	return err
}

// Copy returns a deep copy of this contract.
func (c *Contract) Copy() orm.CloneableData {
	return &Contract{
		Metadata:         c.Metadata.Copy(),
		Admin:            c.Admin.Clone(),
		Members:          copyAddrs(c.Members),
		Threshold:        c.Threshold,
		ProposalLifetime: c.ProposalLifetime,
		ProposalCount:    c.ProposalCount,
		Paused:           c.Paused,
	}
}

// IsMember returns true if the address belongs to the member set.
func (c *Contract) IsMember(a soteria.Address) bool {
	return isMember(c.Members, a)
}

// IsAdmin returns true if the address is the contract admin.
func (c *Contract) IsAdmin(a soteria.Address) bool {
	return c.Admin.Equals(a)
}

func isMember(members []soteria.Address, a soteria.Address) bool {
	for _, m := range members {
		if m.Equals(a) {
			return true
		}
	}
	return false
}

func copyAddrs(addrs []soteria.Address) []soteria.Address {
	if addrs == nil {
		return nil
	}
	cpy := make([]soteria.Address, len(addrs))
	for i, a := range addrs {
		cpy[i] = a.Clone()
	}
	return cpy
}

func validateMembers(members []soteria.Address) error {
	switch n := len(members); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "no members")
	case n > maxMembers:
		return errors.Wrapf(errors.ErrInput, "more than %d members", maxMembers)
	}
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if err := m.Validate(); err != nil {
			return err
		}
		key := m.String()
		if _, ok := seen[key]; ok {
			return errors.Wrapf(ErrDuplicateMember, "%s", m)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func validateThreshold(t uint32, memberCount int) error {
	if t == 0 {
		return errors.Wrap(ErrInvalidThreshold, "threshold is zero")
	}
	if int(t) > memberCount {
		return errors.Wrapf(ErrInvalidThreshold,
			"threshold %d exceeds %d members", t, memberCount)
	}
	return nil
}

// Status is the proposal lifecycle state.
type Status int32

const (
	StatusInvalid Status = iota
	// StatusOpen accepts votes.
	StatusOpen
	// StatusApproved reached the approval threshold and awaits
	// execution.
	StatusApproved
	// StatusRejected can no longer reach the threshold. Terminal.
	StatusRejected
	// StatusExecuted had its payload applied. Terminal.
	StatusExecuted
	// StatusExpired ran out of its validity window while Open.
	// Terminal.
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusExecuted:
		return "executed"
	case StatusExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// VoteOption is a single member decision.
type VoteOption int32

const (
	VoteInvalid VoteOption = iota
	VoteApprove
	VoteReject
)

func (v VoteOption) String() string {
	switch v {
	case VoteApprove:
		return "approve"
	case VoteReject:
		return "reject"
	default:
		return "invalid"
	}
}

// Validate returns an error unless this is a concrete decision.
func (v VoteOption) Validate() error {
	if v != VoteApprove && v != VoteReject {
		return errors.Wrapf(errors.ErrInput, "vote option %d", v)
	}
	return nil
}

// Tally is the running vote count of a proposal.
type Tally struct {
	Approvals  uint32 `json:"approvals"`
	Rejections uint32 `json:"rejections"`
}

// quorumReached returns true when the approvals satisfy the
// threshold.
func (t Tally) quorumReached(threshold uint32) bool {
	return t.Approvals >= threshold
}

// quorumUnreachable returns true when even unanimous approval of the
// remaining members could not satisfy the threshold.
func (t Tally) quorumUnreachable(memberCount int, threshold uint32) bool {
	return uint32(memberCount) < threshold+t.Rejections
}

// Proposal is a pending privileged action. The member set and
// threshold are copied from the contract at creation time and never
// change afterwards.
type Proposal struct {
	Metadata   *soteria.Metadata `json:"metadata"`
	ContractID []byte            `json:"contract_id"`
	Proposer   soteria.Address   `json:"proposer"`
	Payload    Payload           `json:"payload"`
	Status     Status            `json:"status"`
	// SubmissionTime is the block time of the creation.
	SubmissionTime soteria.UnixTime `json:"submission_time"`
	// ExpiresAt is the end of the validity window. Zero means the
	// proposal never expires.
	ExpiresAt soteria.UnixTime `json:"expires_at"`
	// Members and Threshold are the contract snapshot in effect when
	// the proposal was created.
	Members   []soteria.Address `json:"members"`
	Threshold uint32            `json:"threshold"`
	Tally     Tally             `json:"tally"`
}

var _ orm.CloneableData = (*Proposal)(nil)

// GetMetadata implements the Migratable interface.
func (p *Proposal) GetMetadata() *soteria.Metadata {
	return p.Metadata
}

// Marshal serializes the proposal for storage.
func (p *Proposal) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

// Unmarshal deserializes the proposal from its stored form.
func (p *Proposal) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

// Validate returns an error unless the proposal is complete and its
// snapshot is coherent.
func (p *Proposal) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", p.Metadata.Validate())
	if len(p.ContractID) != sequenceIDSize {
		err = errors.AppendField(err, "ContractID",
			errors.Wrap(errors.ErrInput, "invalid contract id length"))
	}
	err = errors.AppendField(err, "Proposer", p.Proposer.Validate())
	if p.Payload == nil {
		err = errors.AppendField(err, "Payload",
			errors.Wrap(ErrInvalidPayload, "empty payload"))
	} else {
		err = errors.AppendField(err, "Payload", p.Payload.Validate())
	}
	if p.Status == StatusInvalid {
		err = errors.AppendField(err, "Status",
			errors.Wrap(errors.ErrState, "invalid status"))
	}
	err = errors.AppendField(err, "SubmissionTime", p.SubmissionTime.Validate())
	err = errors.AppendField(err, "ExpiresAt", p.ExpiresAt.Validate())
	err = errors.AppendField(err, "Members", validateMembers(p.Members))
	err = errors.AppendField(err, "Threshold", validateThreshold(p.Threshold, len(p.Members)))
	return err
}

// Copy returns a deep copy of this proposal. The payload is shared,
// it is immutable once created.
func (p *Proposal) Copy() orm.CloneableData {
	return &Proposal{
		Metadata:       p.Metadata.Copy(),
		ContractID:     append([]byte(nil), p.ContractID...),
		Proposer:       p.Proposer.Clone(),
		Payload:        p.Payload,
		Status:         p.Status,
		SubmissionTime: p.SubmissionTime,
		ExpiresAt:      p.ExpiresAt,
		Members:        copyAddrs(p.Members),
		Threshold:      p.Threshold,
		Tally:          p.Tally,
	}
}

// IsMember returns true if the address belongs to the snapshot member
// set.
func (p *Proposal) IsMember(a soteria.Address) bool {
	return isMember(p.Members, a)
}

// CountVote adds a decision to the running tally.
func (p *Proposal) CountVote(option VoteOption) error {
	switch option {
	case VoteApprove:
		p.Tally.Approvals++
	case VoteReject:
		p.Tally.Rejections++
	default:
		return errors.Wrapf(errors.ErrInput, "vote option %d", option)
	}
	return nil
}

// UndoCountVote removes a previously counted decision from the
// running tally.
func (p *Proposal) UndoCountVote(option VoteOption) error {
	switch option {
	case VoteApprove:
		if p.Tally.Approvals == 0 {
			return errors.Wrap(errors.ErrState, "no approvals to undo")
		}
		p.Tally.Approvals--
	case VoteReject:
		if p.Tally.Rejections == 0 {
			return errors.Wrap(errors.ErrState, "no rejections to undo")
		}
		p.Tally.Rejections--
	default:
		return errors.Wrapf(errors.ErrInput, "vote option %d", option)
	}
	return nil
}

// Rebalance moves an Open proposal to Approved or Rejected if the
// current tally decides the outcome. Returns true if the status
// changed.
func (p *Proposal) Rebalance() bool {
	if p.Status != StatusOpen {
		return false
	}
	if p.Tally.quorumReached(p.Threshold) {
		p.Status = StatusApproved
		return true
	}
	if p.Tally.quorumUnreachable(len(p.Members), p.Threshold) {
		p.Status = StatusRejected
		return true
	}
	return false
}

// Vote is a single member decision on one proposal.
type Vote struct {
	Metadata *soteria.Metadata `json:"metadata"`
	Voter    soteria.Address   `json:"voter"`
	Selected VoteOption        `json:"selected"`
}

var _ orm.CloneableData = (*Vote)(nil)

// GetMetadata implements the Migratable interface.
func (v *Vote) GetMetadata() *soteria.Metadata {
	return v.Metadata
}

// Marshal serializes the vote for storage.
func (v *Vote) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(v)
}

// Unmarshal deserializes the vote from its stored form.
func (v *Vote) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, v)
}

// Validate returns an error unless the vote is complete.
func (v *Vote) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", v.Metadata.Validate())
	err = errors.AppendField(err, "Voter", v.Voter.Validate())
	err = errors.AppendField(err, "Selected", v.Selected.Validate())
	return err
}

// Copy returns a shallow copy, all fields are values.
func (v *Vote) Copy() orm.CloneableData {
	return &Vote{
		Metadata: v.Metadata.Copy(),
		Voter:    v.Voter.Clone(),
		Selected: v.Selected,
	}
}
