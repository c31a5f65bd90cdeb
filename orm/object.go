package orm

import (
	"reflect"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

// SimpleObj is the Object implementation used by all buckets: a primary key
// and the model stored under it.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj returns an object holding value under key. A nil key is
// allowed for bucket prototypes.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Value() weave.Persistent {
	return o.value
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Validate requires both the key and the value, and validates the value.
func (o SimpleObj) Validate() error {
	if len(o.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	if o.value == nil {
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// Clone returns an object holding a new zero value of the same model type,
// ready to be loaded from the database. The key is copied.
func (o *SimpleObj) Clone() Object {
	value := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) > 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: value}
}
