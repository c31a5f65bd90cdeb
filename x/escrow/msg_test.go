package escrow

import (
	"testing"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/weavetest"
	"github.com/iov-one/weaveswap/weavetest/assert"
)

func TestMessageValidation(t *testing.T) {
	addr := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     weave.Msg
		wantErr *errors.Error
	}{
		"valid make": {
			msg: &MakeMsg{Maker: addr, Seed: 1, MintA: "AAA", MintB: "BBB", DepositAmount: 1, ReceiveAmount: 1},
		},
		"make without maker": {
			msg:     &MakeMsg{Seed: 1, MintA: "AAA", MintB: "BBB", DepositAmount: 1, ReceiveAmount: 1},
			wantErr: errors.ErrEmpty,
		},
		"make with invalid mint b": {
			msg:     &MakeMsg{Maker: addr, MintA: "AAA", MintB: "B", DepositAmount: 1, ReceiveAmount: 1},
			wantErr: errors.ErrCurrency,
		},
		"make with too long expiration offset": {
			msg:     &MakeMsg{Maker: addr, Seed: 1, MintA: "AAA", MintB: "BBB", DepositAmount: 1, ReceiveAmount: 1, ExpiresIn: MaxExpirationOffset + 1},
			wantErr: errors.ErrInput,
		},
		"valid take": {
			msg: &TakeMsg{Taker: addr, EscrowID: weavetest.NewCondition().Address()},
		},
		"take without escrow id": {
			msg:     &TakeMsg{Taker: addr},
			wantErr: errors.ErrEmpty,
		},
		"take with malformed escrow id": {
			msg:     &TakeMsg{Taker: addr, EscrowID: []byte("short")},
			wantErr: errors.ErrInput,
		},
		"valid refund": {
			msg: &RefundMsg{EscrowID: weavetest.NewCondition().Address()},
		},
		"refund without escrow id": {
			msg:     &RefundMsg{},
			wantErr: errors.ErrEmpty,
		},
		"configuration without patch": {
			msg:     &UpdateConfigurationMsg{},
			wantErr: errors.ErrEmpty,
		},
		"configuration with negative limit": {
			msg:     &UpdateConfigurationMsg{Patch: &Configuration{Owner: addr, MaxExpiresIn: -1}},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestMessageSerialization(t *testing.T) {
	msg := &MakeMsg{Maker: weavetest.NewCondition().Address(), Seed: 42, MintA: "AAA", MintB: "BBB", DepositAmount: 3, ReceiveAmount: 4, ExpiresIn: 5}
	raw, err := msg.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var got MakeMsg
	if err := got.Unmarshal(raw); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	assert.Equal(t, msg, &got)
}
