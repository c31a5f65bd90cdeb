package currency

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

// genesisToken is a single entry of the "currencies" genesis section.
type genesisToken struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Hook   string `json:"hook"`
}

// Initializer registers the tokens listed in the genesis file.
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

func (*Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var tokens []genesisToken
	if err := opts.ReadOptions("currencies", &tokens); err != nil {
		return err
	}
	tokenInfos := NewTokenInfoBucket()
	for i, t := range tokens {
		info := NewTokenInfo(t.Ticker, t.Name, t.Hook)
		if err := tokenInfos.Save(kv, info); err != nil {
			return errors.Wrapf(err, "currency #%d %q", i, t.Ticker)
		}
	}
	return nil
}
