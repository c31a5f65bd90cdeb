package escrow

import (
	"encoding/binary"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

// authorityExt is the extension name used for all derived authorities.
const authorityExt = "escrow"

// DeriveAuthority returns the authority that owns the custody account of the
// escrow created by maker with given seed, together with the bump that must
// be stored to recreate it.
func DeriveAuthority(maker weave.Address, seed uint64) (weave.Condition, uint8, error) {
	if err := maker.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "maker")
	}
	return weave.FindDerivedCondition(authorityExt, authoritySeeds(maker, seed)...)
}

// Authority recreates the authority of a stored escrow using its bump. The
// escrow key must be the address of the authority.
func Authority(key []byte, e *Escrow) (weave.Condition, error) {
	if e.Bump > 255 {
		return nil, errors.Wrapf(errors.ErrState, "bump %d out of range", e.Bump)
	}
	c, err := weave.CreateDerivedCondition(authorityExt, uint8(e.Bump), authoritySeeds(e.Maker, e.Seed)...)
	if err != nil {
		return nil, errors.Wrap(err, "derive authority")
	}
	if !c.Address().Equals(key) {
		return nil, errors.Wrap(errors.ErrState, "authority does not match escrow key")
	}
	return c, nil
}

func authoritySeeds(maker weave.Address, seed uint64) [][]byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, seed)
	return [][]byte{[]byte(authorityExt), maker, raw}
}
