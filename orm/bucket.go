/*
Package orm stores models in the key value store.

The key space is split into buckets, each holding a single model type under
a "<bucket>:" prefix. A bucket may maintain secondary indexes, updated on
every save and delete, to look up models by another value than the primary
key, for example all escrows created by a maker.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// Bucket is a prefixed part of the database holding objects of the same
// type as its prototype.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ weave.QueryHandler = Bucket{}

// NewBucket returns a bucket storing objects like proto. It panics if the
// name is not 3 to 20 lowercase letters or underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name: %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// Register exposes the bucket under "/<name>" and each index under
// "/<name>/<index>". An empty name defaults to the bucket name.
func (b Bucket) Register(name string, r weave.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for iname, idx := range b.indexes {
		r.Register(root+"/"+iname, idx)
	}
}

// Query returns the raw object stored under the primary key given as data,
// or nothing.
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrap(errors.ErrHuman, "not implemented: "+mod)
	}
	key := b.DBKey(data)
	value, err := db.Get(key)
	if err != nil || value == nil {
		return nil, err
	}
	return []weave.Model{weave.Pair(key, value)}, nil
}

// DBKey returns the database key of given primary key. The result never
// shares memory with the bucket prefix.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, len(b.prefix)+len(key))
	n := copy(out, b.prefix)
	copy(out[n:], key)
	return out
}

// Get returns the object stored under given key or nil.
func (b Bucket) Get(db weave.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db weave.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse loads a serialized object into a new copy of the prototype.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, err
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and stores the object, updating all indexes.
func (b Bucket) Save(db weave.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.updateIndexes(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

// Delete removes the object and its index references. Deleting a missing
// key is not an error.
func (b Bucket) Delete(db weave.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) updateIndexes(db weave.KVStore, key []byte, obj Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && obj == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, obj); err != nil {
			return err
		}
	}
	return nil
}

// WithIndex returns a copy of the bucket with an index referencing each
// object under a single value. It panics if the name is taken.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	return b.WithMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// WithMultiKeyIndex returns a copy of the bucket with an index that can
// reference each object under many values. It panics if the name is taken.
func (b Bucket) WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %q registered twice", name))
	}
	indexes := make(map[string]Index, len(b.indexes)+1)
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	indexes[name] = NewMultiKeyIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	b.indexes = indexes
	return b
}

// GetIndexed returns all objects referenced by the named index under given
// value.
func (b Bucket) GetIndexed(db weave.ReadOnlyKVStore, name string, value []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	refs, err := idx.Keys(db, value)
	if err != nil || len(refs) == 0 {
		return nil, err
	}
	objs := make([]Object, len(refs))
	for i, key := range refs {
		if objs[i], err = b.Get(db, key); err != nil {
			return nil, err
		}
	}
	return objs, nil
}
