package multisig

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/coin"
	"github.com/AlphaR2/soteria/errors"
)

// Payload is the action a proposal carries, applied by the execute
// path once the proposal is approved. It is a closed set of variants,
// registered with the package codec.
type Payload interface {
	Validate() error
}

// TransferPayload moves coins out of the contract treasury. The
// source is always the contract address, only the destination and
// amount are free.
type TransferPayload struct {
	Destination soteria.Address `json:"destination"`
	Amount      coin.Coin       `json:"amount"`
}

var _ Payload = (*TransferPayload)(nil)

// Validate returns an error unless the transfer is well formed.
func (p *TransferPayload) Validate() error {
	var err error
	err = errors.AppendField(err, "Destination", p.Destination.Validate())
	if !p.Amount.IsPositive() {
		err = errors.AppendField(err, "Amount",
			errors.Wrapf(ErrInvalidPayload, "non-positive amount %v", &p.Amount))
	} else {
		err = errors.AppendField(err, "Amount", p.Amount.Validate())
	}
	return err
}

// UpdateMembersPayload replaces the contract member set, threshold
// and proposal lifetime. Snapshots of in-flight proposals are not
// affected.
type UpdateMembersPayload struct {
	Members          []soteria.Address    `json:"members"`
	Threshold        uint32               `json:"threshold"`
	ProposalLifetime soteria.UnixDuration `json:"proposal_lifetime"`
}

var _ Payload = (*UpdateMembersPayload)(nil)

// Validate applies the same rules as the contract itself.
func (p *UpdateMembersPayload) Validate() error {
	var err error
	err = errors.AppendField(err, "Members", validateMembers(p.Members))
	err = errors.AppendField(err, "Threshold", validateThreshold(p.Threshold, len(p.Members)))
	err = errors.AppendField(err, "ProposalLifetime", p.ProposalLifetime.Validate())
	return err
}

// InstructionPayload carries a serialized message to be delivered
// under the contract condition. The application provides the decoder
// and the executing handler.
type InstructionPayload struct {
	RawInstruction []byte `json:"raw_instruction"`
}

var _ Payload = (*InstructionPayload)(nil)

// Validate returns an error when the instruction is empty.
func (p *InstructionPayload) Validate() error {
	var err error
	if len(p.RawInstruction) == 0 {
		err = errors.AppendField(err, "RawInstruction",
			errors.Wrap(ErrInvalidPayload, "empty instruction"))
	}
	return err
}
