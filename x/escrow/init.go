package escrow

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/gconf"
)

// Initializer loads the escrow configuration from the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the configuration declared in the "gconf" section. The
// configuration is optional, without it escrows are not limited.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(db, opts, confPkg, &conf)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}
