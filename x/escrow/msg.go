package escrow

import (
	"math"
	"time"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
)

// MaxExpirationOffset is the longest expiration offset, in seconds, whose
// expiration time is still representable as a time.Duration.
const MaxExpirationOffset = math.MaxInt64 / int64(time.Second)

func init() {
	codec.RegisterMsg(&MakeMsg{}, "escrow/make")
	codec.RegisterMsg(&TakeMsg{}, "escrow/take")
	codec.RegisterMsg(&RefundMsg{}, "escrow/refund")
	codec.RegisterMsg(&UpdateConfigurationMsg{}, "escrow/update_configuration")
}

// MakeMsg opens a new escrow, locking DepositAmount of MintA in exchange for
// ReceiveAmount of MintB.
type MakeMsg struct {
	Maker         weave.Address `json:"maker"`
	Seed          uint64        `json:"seed"`
	MintA         string        `json:"mint_a"`
	MintB         string        `json:"mint_b"`
	DepositAmount uint64        `json:"deposit_amount"`
	ReceiveAmount uint64        `json:"receive_amount"`
	// ExpiresIn is the number of seconds, counted from the block time, after
	// which the escrow can no longer be taken. Zero means no expiry.
	ExpiresIn int64 `json:"expires_in"`
}

var _ weave.Msg = (*MakeMsg)(nil)

func (MakeMsg) Path() string {
	return "escrow/make"
}

func (m *MakeMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if m.DepositAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "deposit amount")
	}
	if m.ReceiveAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "receive amount")
	}
	if !coin.IsCC(m.MintA) {
		return errors.Wrapf(errors.ErrCurrency, "mint a %q", m.MintA)
	}
	if !coin.IsCC(m.MintB) {
		return errors.Wrapf(errors.ErrCurrency, "mint b %q", m.MintB)
	}
	if m.MintA == m.MintB {
		return errors.Wrap(errors.ErrInput, "mints must differ")
	}
	if m.ExpiresIn < 0 {
		return errors.Wrap(errors.ErrInput, "negative expiration offset")
	}
	if m.ExpiresIn > MaxExpirationOffset {
		return errors.Wrapf(errors.ErrInput, "expiration offset above %d seconds", MaxExpirationOffset)
	}
	return nil
}

func (m *MakeMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *MakeMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// TakeMsg pays the maker and releases the deposit to the taker.
type TakeMsg struct {
	Taker    weave.Address `json:"taker"`
	EscrowID []byte        `json:"escrow_id"`
}

var _ weave.Msg = (*TakeMsg)(nil)

func (TakeMsg) Path() string {
	return "escrow/take"
}

func (m *TakeMsg) Validate() error {
	if err := m.Taker.Validate(); err != nil {
		return errors.Wrap(err, "taker")
	}
	return validateEscrowID(m.EscrowID)
}

func (m *TakeMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *TakeMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// RefundMsg cancels an escrow and returns the deposit to the maker.
type RefundMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

var _ weave.Msg = (*RefundMsg)(nil)

func (RefundMsg) Path() string {
	return "escrow/refund"
}

func (m *RefundMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

func (m *RefundMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *RefundMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// UpdateConfigurationMsg changes the escrow configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return "escrow/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// validateEscrowID checks that the id has the length of an authority
// address.
func validateEscrowID(id []byte) error {
	if err := weave.Address(id).Validate(); err != nil {
		return errors.Wrap(err, "escrow id")
	}
	return nil
}
