package orm

import (
	"reflect"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key is stored and
	// ErrNotFound otherwise.
	Has(db weave.ReadOnlyKVStore, key []byte) error

	// ByIndex returns all entities that are referenced by given index
	// value. Destination must be a pointer to a slice of models. Keys of
	// loaded entities are returned in the same order.
	ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error)

	// Put saves given model in the database.
	Put(db weave.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db weave.KVStore, key []byte) error

	// Register registers this bucket and its indexes in the query router.
	Register(name string, r weave.QueryRouter)
}

// ModelSlicePtr is a pointer to a slice of models, for example *[]*Escrow.
type ModelSlicePtr interface{}

// NewModelBucket returns a ModelBucket instance. This implementation relies on
// a bucket instance. Final implementation should operate directly on the
// KVStore instead.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	mb := &modelBucket{
		b:     b,
		model: reflect.TypeOf(m),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) Register(name string, r weave.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", res, dest)
	}

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db weave.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil {
		return nil, err
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", destination)
	}
	slice := dest.Elem()
	elem := slice.Type().Elem()

	keys := make([][]byte, 0, len(objs))
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		val := reflect.ValueOf(obj.Value())
		switch {
		case val.Type().AssignableTo(elem):
			slice = reflect.Append(slice, val)
		case val.Elem().Type().AssignableTo(elem):
			slice = reflect.Append(slice, val.Elem())
		default:
			return nil, errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", obj.Value(), elem)
		}
		keys = append(keys, obj.Key())
	}
	dest.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) Put(db weave.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T, want %s", m, mb.model)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db weave.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}
