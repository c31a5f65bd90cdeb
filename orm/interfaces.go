package orm

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/x"
)

// Object is a model together with its primary key, as kept in a bucket.
type Object interface {
	x.Validater
	Key() []byte
	SetKey([]byte)
	// Clone returns an empty object of the same type, used to load
	// objects from the database.
	Clone() Object
	Value() weave.Persistent
}

// Cloneable is implemented by bucket prototypes.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a value that can be held by a SimpleObj.
type CloneableData interface {
	x.Validater
	weave.Persistent
	Copy() CloneableData
}

// Model is an entity stored with a ModelBucket. It is the same interface as
// CloneableData, named for readability of the model bucket API.
type Model interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}
