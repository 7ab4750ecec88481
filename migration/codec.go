package migration

import (
	amino "github.com/tendermint/go-amino"
)

// cdc serializes all entities maintained by this package.
var cdc = amino.NewCodec()
