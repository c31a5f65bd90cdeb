package orm

import (
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/errors"
)

// note is a minimal model used to exercise buckets and indexes.
type note struct {
	Owner []byte
	Tags  []string
	Text  string
}

var _ Model = (*note)(nil)

func (n *note) Marshal() ([]byte, error) { return codec.Marshal(n) }

func (n *note) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, n) }

func (n *note) Validate() error {
	if len(n.Owner) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	return nil
}

func (n *note) Copy() CloneableData {
	cpy := *n
	cpy.Tags = append([]string(nil), n.Tags...)
	return &cpy
}

func noteOwner(obj Object) ([]byte, error) {
	n, ok := obj.Value().(*note)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return n.Owner, nil
}

func noteTags(obj Object) ([][]byte, error) {
	n, ok := obj.Value().(*note)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	keys := make([][]byte, 0, len(n.Tags))
	for _, t := range n.Tags {
		keys = append(keys, []byte(t))
	}
	return keys, nil
}
