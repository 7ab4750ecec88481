package cash

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/coin"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/migration"
)

func init() {
	migration.MustRegister(1, &SendMsg{}, migration.NoModification)
}

var _ soteria.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves an amount of coins from one account to another.
type SendMsg struct {
	Metadata    *soteria.Metadata `json:"metadata"`
	Source      soteria.Address   `json:"source"`
	Destination soteria.Address   `json:"destination"`
	Amount      *coin.Coin        `json:"amount"`
	// Memo is a free text note attached to the transfer.
	Memo string `json:"memo,omitempty"`
}

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// GetMetadata implements the Migratable interface.
func (s *SendMsg) GetMetadata() *soteria.Metadata {
	return s.Metadata
}

// Marshal serializes the message for transport.
func (s *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

// Unmarshal deserializes the message.
func (s *SendMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// Validate makes sure the transfer is sensible.
func (s *SendMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", s.Metadata.Validate())
	if coin.IsEmpty(s.Amount) || !s.Amount.IsPositive() {
		err = errors.Append(err, errors.Wrapf(errors.ErrAmount, "non-positive amount %v", s.Amount))
	} else {
		err = errors.AppendField(err, "Amount", s.Amount.Validate())
	}
	err = errors.AppendField(err, "Source", s.Source.Validate())
	err = errors.AppendField(err, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return err
}
