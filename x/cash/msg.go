package cash

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
)

func init() {
	codec.RegisterMsg(&SendMsg{}, "cash/send")
}

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves coins from a wallet owned by the signer to any address.
type SendMsg struct {
	Source      weave.Address `json:"source"`
	Destination weave.Address `json:"destination"`
	Amount      *coin.Coin    `json:"amount"`
	Memo        string        `json:"memo,omitempty"`
}

// Ensure we implement the Msg interface
var _ weave.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if coin.IsEmpty(s.Amount) {
		return errors.Wrap(errors.ErrAmount, "non-positive SendMsg")
	}
	if err := s.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

func (s *SendMsg) Marshal() ([]byte, error) {
	return codec.Marshal(s)
}

func (s *SendMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, s)
}
