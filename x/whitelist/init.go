package whitelist

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/gconf"
)

// Initializer loads the whitelist configuration and the initial entries from
// the genesis file.
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis reads the "whitelist" section, a list of owner addresses that
// are whitelisted from the start. The administrator must be configured in the
// "gconf" section.
func (*Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var owners []weave.Address
	if err := opts.ReadOptions("whitelist", &owners); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, owner := range owners {
		if err := owner.Validate(); err != nil {
			return errors.Wrap(err, "genesis owner")
		}
		entry := Entry{Whitelisted: true, AddedBy: conf.Admin}
		if err := bucket.Put(db, owner, &entry); err != nil {
			return errors.Wrapf(err, "owner %s", owner)
		}
	}
	return nil
}
