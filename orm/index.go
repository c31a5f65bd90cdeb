package orm

import (
	"bytes"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

// Index is a secondary index maintained by a bucket.
type Index interface {
	weave.QueryHandler

	Name() string

	// Update moves the references of an entity that changed. A nil prev
	// means the entity was created, a nil save means it was deleted. The
	// primary key of an entity cannot change.
	Update(db weave.KVStore, prev Object, save Object) error

	// Keys returns the primary keys of all entities indexed under given
	// value.
	Keys(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error)
}

// Indexer returns the index value of an object. A nil value means the
// object is not indexed.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer returns all index values of an object.
type MultiKeyIndexer func(Object) ([][]byte, error)

const compactIdxPrefix = "_i."

// compactIndex keeps all references for one index value under a single
// key: the primary key itself for a unique index, a MultiRef otherwise.
// Good for indexes referencing a few entities per value, like escrows of a
// single maker.
type compactIndex struct {
	name   string
	prefix []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ Index = compactIndex{}

// NewMultiKeyIndex returns an index with given name. refKey turns a
// primary key into the database key of the referenced entity.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return compactIndex{
		name:   name,
		prefix: []byte(compactIdxPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		if err != nil || key == nil {
			return nil, err
		}
		return [][]byte{key}, nil
	}
}

func (i compactIndex) Name() string {
	return i.name
}

func (i compactIndex) dbKey(value []byte) []byte {
	key := make([]byte, len(i.prefix)+len(value))
	n := copy(key, i.prefix)
	copy(key[n:], value)
	return key
}

func (i compactIndex) Update(db weave.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		values, err := i.index(save)
		if err != nil {
			return err
		}
		return i.insertAll(db, values, save.Key())
	case save == nil:
		values, err := i.index(prev)
		if err != nil {
			return err
		}
		return i.removeAll(db, values, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

func (i compactIndex) move(db weave.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}
	before, err := i.index(prev)
	if err != nil {
		return err
	}
	after, err := i.index(save)
	if err != nil {
		return err
	}
	added := subtract(after, before)
	if i.unique {
		// fail before any change is made
		for _, v := range added {
			switch taken, err := db.Has(i.dbKey(v)); {
			case err != nil:
				return err
			case taken:
				return errors.Wrap(errors.ErrDuplicate, i.name)
			}
		}
	}
	if err := i.removeAll(db, subtract(before, after), prev.Key()); err != nil {
		return err
	}
	return i.insertAll(db, added, prev.Key())
}

// subtract returns the values of a that are not in b.
func subtract(a, b [][]byte) [][]byte {
	var res [][]byte
	for _, v := range a {
		if !contains(b, v) {
			res = append(res, v)
		}
	}
	return res
}

func contains(set [][]byte, v []byte) bool {
	for _, s := range set {
		if bytes.Equal(s, v) {
			return true
		}
	}
	return false
}

func (i compactIndex) insertAll(db weave.KVStore, values [][]byte, pk []byte) error {
	for _, v := range values {
		if err := i.insert(db, v, pk); err != nil {
			return err
		}
	}
	return nil
}

func (i compactIndex) removeAll(db weave.KVStore, values [][]byte, pk []byte) error {
	for _, v := range values {
		if err := i.remove(db, v, pk); err != nil {
			return err
		}
	}
	return nil
}

func (i compactIndex) insert(db weave.KVStore, value []byte, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	key := i.dbKey(value)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if i.unique {
		if cur != nil {
			return errors.Wrap(errors.ErrDuplicate, i.name)
		}
		return db.Set(key, pk)
	}

	var refs MultiRef
	if cur != nil {
		if err := refs.Unmarshal(cur); err != nil {
			return err
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	return i.saveRefs(db, key, &refs)
}

func (i compactIndex) remove(db weave.KVStore, value []byte, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	key := i.dbKey(value)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index from nothing")
	}
	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrNotFound, "index references another object")
		}
		return db.Delete(key)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	return i.saveRefs(db, key, &refs)
}

func (i compactIndex) saveRefs(db weave.KVStore, key []byte, refs *MultiRef) error {
	if refs.Size() == 0 {
		return db.Delete(key)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

func (i compactIndex) Keys(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.dbKey(value))
	switch {
	case err != nil:
		return nil, err
	case raw == nil:
		return nil, nil
	case i.unique:
		return [][]byte{raw}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query returns the entities referenced by the index value given as data.
// Returned keys are database keys of the entities.
func (i compactIndex) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrap(errors.ErrHuman, "not implemented: "+mod)
	}
	refs, err := i.Keys(db, data)
	if err != nil || len(refs) == 0 {
		return nil, err
	}
	res := make([]weave.Model, len(refs))
	for n, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[n] = weave.Pair(key, value)
	}
	return res, nil
}
