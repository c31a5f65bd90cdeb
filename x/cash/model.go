package cash

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the coins of a single address. Only the owner can move funds
// out of the wallet.
//
// Accounts opened for an owner set the Ticker and hold no other token.
type Wallet struct {
	Owner  weave.Address `json:"owner"`
	Ticker string        `json:"ticker,omitempty"`
	Coins  coin.Coins    `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires an owner and that all coins are in alphabetical order.
// An empty wallet is valid.
func (w *Wallet) Validate() error {
	if err := w.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if w.Ticker != "" && !coin.IsCC(w.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", w.Ticker)
	}
	return w.Coins.Validate()
}

// Copy makes a new wallet with the same coins
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		Owner:  w.Owner.Clone(),
		Ticker: w.Ticker,
		Coins:  w.Coins.Clone(),
	}
}

func (w *Wallet) Marshal() ([]byte, error) {
	return codec.Marshal(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, w)
}

// AccountAddress returns the address of the account that holds given token
// on behalf of the owner. There is no private key for this address.
//
// The owner is length prefixed so that no two owner and ticker pairs share
// an account.
func AccountAddress(owner weave.Address, ticker string) weave.Address {
	data := make([]byte, 0, 1+len(owner)+len(ticker))
	data = append(data, byte(len(owner)))
	data = append(data, owner...)
	data = append(data, ticker...)
	return weave.NewCondition("cash", "account", data).Address()
}

// NewBucket returns a bucket for wallets, indexed by the owner.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{},
		orm.WithIndex("owner", ownerIndexer, false))
}

func ownerIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	w, ok := obj.Value().(*Wallet)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "can only take index of Wallet, got %T", obj.Value())
	}
	return w.Owner, nil
}
