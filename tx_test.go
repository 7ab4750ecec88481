package soteria_test

import (
	"testing"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/soteriatest"
	"github.com/stretchr/testify/assert"
)

type otherMsg struct{}

var _ soteria.Msg = (*otherMsg)(nil)

func (otherMsg) Path() string              { return "test/other" }
func (otherMsg) Validate() error           { return nil }
func (otherMsg) Marshal() ([]byte, error)  { return []byte("other"), nil }
func (*otherMsg) Unmarshal(b []byte) error { return nil }

func TestLoadMsg(t *testing.T) {
	msg := &soteriatest.Msg{RoutePath: "test/good", Serialized: []byte("payload")}
	tx := &soteriatest.Tx{Msg: msg}

	var dest soteriatest.Msg
	assert.NoError(t, soteria.LoadMsg(tx, &dest))
	assert.Equal(t, *msg, dest)
}

func TestLoadMsgWrongDestination(t *testing.T) {
	tx := &soteriatest.Tx{Msg: &soteriatest.Msg{RoutePath: "test/good"}}

	var dest otherMsg
	err := soteria.LoadMsg(tx, &dest)
	assert.True(t, errors.ErrType.Is(err))

	var nilDest *otherMsg
	err = soteria.LoadMsg(tx, nilDest)
	assert.True(t, errors.ErrType.Is(err))
}

func TestLoadMsgValidates(t *testing.T) {
	tx := &soteriatest.Tx{Msg: &soteriatest.Msg{
		RoutePath: "test/good",
		Err:       errors.Wrap(errors.ErrInput, "invalid"),
	}}

	var dest soteriatest.Msg
	err := soteria.LoadMsg(tx, &dest)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestGetPath(t *testing.T) {
	tx := &soteriatest.Tx{Msg: &soteriatest.Msg{RoutePath: "test/good"}}
	assert.Equal(t, "test/good", soteria.GetPath(tx))

	broken := &soteriatest.Tx{Err: errors.Wrap(errors.ErrState, "broken")}
	assert.Equal(t, "(missing)", soteria.GetPath(broken))
}
