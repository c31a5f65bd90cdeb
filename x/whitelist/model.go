package whitelist

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/orm"
)

// Entry declares if an owner is allowed to move gated tokens.
type Entry struct {
	Whitelisted bool `json:"whitelisted"`
	// AddedBy is the administrator that created the entry.
	AddedBy weave.Address `json:"added_by"`
}

var _ orm.Model = (*Entry)(nil)

func (e *Entry) Validate() error {
	if err := e.AddedBy.Validate(); err != nil {
		return errors.Wrap(err, "added by")
	}
	return nil
}

func (e *Entry) Copy() orm.CloneableData {
	return &Entry{
		Whitelisted: e.Whitelisted,
		AddedBy:     e.AddedBy.Clone(),
	}
}

func (e *Entry) Marshal() ([]byte, error) {
	return codec.Marshal(e)
}

func (e *Entry) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, e)
}

// NewBucket returns a bucket that keeps whitelist entries under the owner
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("wlist", &Entry{})
}
