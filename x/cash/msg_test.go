package cash

import (
	"strings"
	"testing"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/coin"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/soteriatest"
	"github.com/AlphaR2/soteria/soteriatest/assert"
)

func TestValidateSendMsg(t *testing.T) {
	addr1 := soteriatest.NewCondition().Address()
	addr2 := soteriatest.NewCondition().Address()

	cases := map[string]struct {
		msg      *SendMsg
		wantErrs map[string]*errors.Error
	}{
		"valid message": {
			msg: &SendMsg{
				Metadata:    &soteria.Metadata{Schema: 1},
				Source:      addr1,
				Destination: addr2,
				Amount:      coin.NewCoinp(10, 0, "FOO"),
				Memo:        "some memo message",
			},
			wantErrs: map[string]*errors.Error{
				"Metadata":    nil,
				"Source":      nil,
				"Destination": nil,
				"Amount":      nil,
				"Memo":        nil,
			},
		},
		"missing metadata": {
			msg: &SendMsg{
				Source:      addr1,
				Destination: addr2,
				Amount:      coin.NewCoinp(10, 0, "FOO"),
			},
			wantErrs: map[string]*errors.Error{
				"Metadata": errors.ErrMetadata,
			},
		},
		"missing source": {
			msg: &SendMsg{
				Metadata:    &soteria.Metadata{Schema: 1},
				Destination: addr2,
				Amount:      coin.NewCoinp(10, 0, "FOO"),
			},
			wantErrs: map[string]*errors.Error{
				"Source": errors.ErrInput,
			},
		},
		"memo too long": {
			msg: &SendMsg{
				Metadata:    &soteria.Metadata{Schema: 1},
				Source:      addr1,
				Destination: addr2,
				Amount:      coin.NewCoinp(10, 0, "FOO"),
				Memo:        strings.Repeat("a", maxMemoSize+1),
			},
			wantErrs: map[string]*errors.Error{
				"Memo": errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, wantErr := range tc.wantErrs {
				assert.FieldError(t, err, field, wantErr)
			}
		})
	}
}

func TestValidateZeroAmountFails(t *testing.T) {
	msg := &SendMsg{
		Metadata:    &soteria.Metadata{Schema: 1},
		Source:      soteriatest.NewCondition().Address(),
		Destination: soteriatest.NewCondition().Address(),
		Amount:      coin.NewCoinp(0, 0, "FOO"),
	}
	assert.IsErr(t, errors.ErrAmount, msg.Validate())
}
