package soteriatest

import "github.com/AlphaR2/soteria"

// Tx wraps a single message to be processed within this transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg soteria.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ soteria.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (soteria.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg is a mock message, a request processed within a single
// transaction.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ soteria.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Validate() error {
	return m.Err
}
