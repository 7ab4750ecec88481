package multisig

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/migration"
)

func init() {
	migration.MustRegister(1, &CreateContractMsg{}, migration.NoModification)
	migration.MustRegister(1, &CreateProposalMsg{}, migration.NoModification)
	migration.MustRegister(1, &VoteMsg{}, migration.NoModification)
	migration.MustRegister(1, &ExecuteMsg{}, migration.NoModification)
	migration.MustRegister(1, &CancelProposalMsg{}, migration.NoModification)
	migration.MustRegister(1, &TogglePauseMsg{}, migration.NoModification)
}

var (
	_ soteria.Msg = (*CreateContractMsg)(nil)
	_ soteria.Msg = (*CreateProposalMsg)(nil)
	_ soteria.Msg = (*VoteMsg)(nil)
	_ soteria.Msg = (*ExecuteMsg)(nil)
	_ soteria.Msg = (*CancelProposalMsg)(nil)
	_ soteria.Msg = (*TogglePauseMsg)(nil)
)

// CreateContractMsg initializes a new member registry with an empty
// proposal sequence.
type CreateContractMsg struct {
	Metadata         *soteria.Metadata    `json:"metadata"`
	Members          []soteria.Address    `json:"members"`
	Threshold        uint32               `json:"threshold"`
	ProposalLifetime soteria.UnixDuration `json:"proposal_lifetime"`
}

// Path returns the routing path for this message.
func (CreateContractMsg) Path() string {
	return "multisig/create_contract"
}

// GetMetadata implements the Migratable interface.
func (m *CreateContractMsg) GetMetadata() *soteria.Metadata {
	return m.Metadata
}

// Marshal serializes the message for transport.
func (m *CreateContractMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal deserializes the message.
func (m *CreateContractMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate applies the contract coherence rules.
func (m *CreateContractMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	err = errors.AppendField(err, "Members", validateMembers(m.Members))
	err = errors.AppendField(err, "Threshold", validateThreshold(m.Threshold, len(m.Members)))
	err = errors.AppendField(err, "ProposalLifetime", m.ProposalLifetime.Validate())
	return err
}

// CreateProposalMsg opens a new proposal under an existing contract.
// The main signer is the proposer and must be a current member.
type CreateProposalMsg struct {
	Metadata   *soteria.Metadata `json:"metadata"`
	ContractID []byte            `json:"contract_id"`
	Payload    Payload           `json:"payload"`
}

// Path returns the routing path for this message.
func (CreateProposalMsg) Path() string {
	return "multisig/create_proposal"
}

// GetMetadata implements the Migratable interface.
func (m *CreateProposalMsg) GetMetadata() *soteria.Metadata {
	return m.Metadata
}

// Marshal serializes the message for transport.
func (m *CreateProposalMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal deserializes the message.
func (m *CreateProposalMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate ensures the reference and the payload are well formed.
func (m *CreateProposalMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	if len(m.ContractID) != sequenceIDSize {
		err = errors.AppendField(err, "ContractID",
			errors.Wrap(errors.ErrInput, "invalid contract id length"))
	}
	if m.Payload == nil {
		err = errors.AppendField(err, "Payload",
			errors.Wrap(ErrInvalidPayload, "empty payload"))
	} else {
		err = errors.AppendField(err, "Payload", m.Payload.Validate())
	}
	return err
}

// VoteMsg casts or replaces the decision of the main signer on an
// open proposal.
type VoteMsg struct {
	Metadata   *soteria.Metadata `json:"metadata"`
	ProposalID []byte            `json:"proposal_id"`
	Selected   VoteOption        `json:"selected"`
}

// Path returns the routing path for this message.
func (VoteMsg) Path() string {
	return "multisig/vote"
}

// GetMetadata implements the Migratable interface.
func (m *VoteMsg) GetMetadata() *soteria.Metadata {
	return m.Metadata
}

// Marshal serializes the message for transport.
func (m *VoteMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal deserializes the message.
func (m *VoteMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate ensures the vote references a proposal and carries a
// concrete decision.
func (m *VoteMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	if len(m.ProposalID) != proposalIDSize {
		err = errors.AppendField(err, "ProposalID",
			errors.Wrap(errors.ErrInput, "invalid proposal id length"))
	}
	err = errors.AppendField(err, "Selected", m.Selected.Validate())
	return err
}

// ExecuteMsg applies the payload of an approved proposal.
type ExecuteMsg struct {
	Metadata   *soteria.Metadata `json:"metadata"`
	ProposalID []byte            `json:"proposal_id"`
}

// Path returns the routing path for this message.
func (ExecuteMsg) Path() string {
	return "multisig/execute"
}

// GetMetadata implements the Migratable interface.
func (m *ExecuteMsg) GetMetadata() *soteria.Metadata {
	return m.Metadata
}

// Marshal serializes the message for transport.
func (m *ExecuteMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal deserializes the message.
func (m *ExecuteMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate ensures the execute call references a proposal.
func (m *ExecuteMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	if len(m.ProposalID) != proposalIDSize {
		err = errors.AppendField(err, "ProposalID",
			errors.Wrap(errors.ErrInput, "invalid proposal id length"))
	}
	return err
}

// CancelProposalMsg withdraws an open proposal. Only the proposer or
// the contract admin may cancel.
type CancelProposalMsg struct {
	Metadata   *soteria.Metadata `json:"metadata"`
	ProposalID []byte            `json:"proposal_id"`
}

// Path returns the routing path for this message.
func (CancelProposalMsg) Path() string {
	return "multisig/cancel_proposal"
}

// GetMetadata implements the Migratable interface.
func (m *CancelProposalMsg) GetMetadata() *soteria.Metadata {
	return m.Metadata
}

// Marshal serializes the message for transport.
func (m *CancelProposalMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal deserializes the message.
func (m *CancelProposalMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate ensures the cancel call references a proposal.
func (m *CancelProposalMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	if len(m.ProposalID) != proposalIDSize {
		err = errors.AppendField(err, "ProposalID",
			errors.Wrap(errors.ErrInput, "invalid proposal id length"))
	}
	return err
}

// TogglePauseMsg flips the pause flag of a contract. Only the
// contract admin may pause or unpause.
type TogglePauseMsg struct {
	Metadata   *soteria.Metadata `json:"metadata"`
	ContractID []byte            `json:"contract_id"`
}

// Path returns the routing path for this message.
func (TogglePauseMsg) Path() string {
	return "multisig/toggle_pause"
}

// GetMetadata implements the Migratable interface.
func (m *TogglePauseMsg) GetMetadata() *soteria.Metadata {
	return m.Metadata
}

// Marshal serializes the message for transport.
func (m *TogglePauseMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal deserializes the message.
func (m *TogglePauseMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate ensures the toggle references a contract.
func (m *TogglePauseMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	if len(m.ContractID) != sequenceIDSize {
		err = errors.AppendField(err, "ContractID",
			errors.Wrap(errors.ErrInput, "invalid contract id length"))
	}
	return err
}
