package whitelist

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/orm"
	"github.com/iov-one/weaveswap/x/cash"
)

// HookName is the token hook that selects this gate.
const HookName = "whitelist"

// Gate allows a transfer only when the owner of the source wallet has a
// whitelist entry that is switched on.
type Gate struct {
	bucket orm.ModelBucket
}

var _ cash.TransferGate = (*Gate)(nil)

func NewGate() *Gate {
	return &Gate{bucket: NewBucket()}
}

func (g *Gate) AllowTransfer(db weave.ReadOnlyKVStore, ticker string, owner, dest weave.Address, amount coin.Coin) error {
	var entry Entry
	switch err := g.bucket.One(db, owner, &entry); {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrDenied, "%s is not whitelisted", owner)
	case err != nil:
		return err
	}
	if !entry.Whitelisted {
		return errors.Wrapf(errors.ErrDenied, "%s is switched off", owner)
	}
	return nil
}
