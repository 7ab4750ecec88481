package cash

import (
	"github.com/AlphaR2/soteria/errors"
)

// ErrInsufficientFunds is a transient failure. The source wallet does
// not hold enough coins right now, but a later attempt against the
// same wallet may succeed.
var ErrInsufficientFunds = errors.Register(1040, "insufficient funds")
