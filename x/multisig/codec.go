package multisig

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*Payload)(nil), nil)
	cdc.RegisterConcrete(&TransferPayload{}, "soteria/multisig/transfer", nil)
	cdc.RegisterConcrete(&UpdateMembersPayload{}, "soteria/multisig/members", nil)
	cdc.RegisterConcrete(&InstructionPayload{}, "soteria/multisig/instruction", nil)
}
