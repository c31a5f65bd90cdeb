package currency

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
)

func init() {
	codec.RegisterMsg(&CreateMsg{}, "currency/create")
	codec.RegisterMsg(&FreezeMsg{}, "currency/freeze")
}

// CreateMsg registers a new token.
type CreateMsg struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Hook   string `json:"hook,omitempty"`
}

var _ weave.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return "currency/create"
}

func (m *CreateMsg) Validate() error {
	if !coin.IsCC(m.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", m.Ticker)
	}
	info := TokenInfo{Name: m.Name, Hook: m.Hook}
	if err := info.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	return nil
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// FreezeMsg changes the frozen state of a registered token.
type FreezeMsg struct {
	Ticker string `json:"ticker"`
	Frozen bool   `json:"frozen"`
}

var _ weave.Msg = (*FreezeMsg)(nil)

func (FreezeMsg) Path() string {
	return "currency/freeze"
}

func (m *FreezeMsg) Validate() error {
	if !coin.IsCC(m.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", m.Ticker)
	}
	return nil
}

func (m *FreezeMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *FreezeMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}
