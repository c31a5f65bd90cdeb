package cash

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
)

// Initializer fulfils the InitStater interface to load data from
// the genesis file
type Initializer struct {
	control *Controller
}

var _ weave.Initializer = (*Initializer)(nil)

// NewInitializer returns an initializer that mints the genesis balances
// using given controller.
func NewInitializer(control *Controller) *Initializer {
	return &Initializer{control: control}
}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (i *Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var wallets []struct {
		Address weave.Address `json:"address"`
		Coins   coin.Coins    `json:"coins"`
	}
	if err := opts.ReadOptions("cash", &wallets); err != nil {
		return err
	}
	for _, w := range wallets {
		if err := w.Address.Validate(); err != nil {
			return errors.Wrap(err, "genesis wallet")
		}
		for _, c := range w.Coins {
			if err := i.control.Mint(db, w.Address, *c); err != nil {
				return errors.Wrapf(err, "wallet %s", w.Address)
			}
		}
	}
	return nil
}
