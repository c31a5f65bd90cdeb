package escrow

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/gconf"
)

const confPkg = "escrow"

// Configuration limits the escrows that can be made.
type Configuration struct {
	// Owner is allowed to change the configuration.
	Owner weave.Address `json:"owner"`
	// MaxExpiresIn is the longest expiration offset, in seconds, that a
	// maker can request. Zero means no limit.
	MaxExpiresIn int64 `json:"max_expires_in"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.MaxExpiresIn < 0 {
		return errors.Wrap(errors.ErrInput, "negative max expires in")
	}
	return nil
}

func (c *Configuration) GetOwner() weave.Address {
	return c.Owner
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

// loadConf returns the stored configuration. Without a stored configuration
// no limits apply.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
