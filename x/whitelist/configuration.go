package whitelist

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/gconf"
)

const confPkg = "whitelist"

// Configuration declares the administrator of the whitelist.
type Configuration struct {
	Admin weave.Address `json:"admin"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

// GetOwner returns the administrator, who is also allowed to change the
// configuration.
func (c *Configuration) GetOwner() weave.Address {
	return c.Admin
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
