package escrow

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/orm"
)

// Escrow is an open offer to exchange the content of the custody account for
// ReceiveAmount of MintB. The deposited amount is not stored, it is whatever
// the custody account holds.
type Escrow struct {
	Maker         weave.Address  `json:"maker"`
	Seed          uint64         `json:"seed"`
	MintA         string         `json:"mint_a"`
	MintB         string         `json:"mint_b"`
	ReceiveAmount uint64         `json:"receive_amount"`
	Expiry        weave.UnixTime `json:"expiry"`
	Bump          uint32         `json:"bump"`
	Custody       weave.Address  `json:"custody"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if !coin.IsCC(e.MintA) {
		return errors.Wrapf(errors.ErrCurrency, "mint a %q", e.MintA)
	}
	if !coin.IsCC(e.MintB) {
		return errors.Wrapf(errors.ErrCurrency, "mint b %q", e.MintB)
	}
	if e.MintA == e.MintB {
		return errors.Wrap(errors.ErrInput, "mints must differ")
	}
	if e.ReceiveAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "receive amount")
	}
	if e.Expiry < 0 {
		return errors.Wrap(errors.ErrInput, "negative expiry")
	}
	if e.Bump > 255 {
		return errors.Wrapf(errors.ErrInput, "bump %d", e.Bump)
	}
	if err := e.Custody.Validate(); err != nil {
		return errors.Wrap(err, "custody")
	}
	return nil
}

// Copy makes a deep copy of the escrow.
func (e *Escrow) Copy() orm.CloneableData {
	return &Escrow{
		Maker:         e.Maker.Clone(),
		Seed:          e.Seed,
		MintA:         e.MintA,
		MintB:         e.MintB,
		ReceiveAmount: e.ReceiveAmount,
		Expiry:        e.Expiry,
		Bump:          e.Bump,
		Custody:       e.Custody.Clone(),
	}
}

func (e *Escrow) Marshal() ([]byte, error) {
	return codec.Marshal(e)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, e)
}

// NewBucket returns a bucket for escrows, stored under the address of their
// authority and indexed by the maker.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("esc", &Escrow{},
		orm.WithIndex("maker", makerIndexer, false))
}

func makerIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	e, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "can only take index of Escrow, got %T", obj.Value())
	}
	return e.Maker, nil
}
