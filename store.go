package weave

// ReadOnlyKVStore gives read access to the state. Get returns a nil value
// for a missing key. Both methods panic on a nil key.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// SetDeleter is the write half shared by a store and a batch. Callers must
// not modify the key or value after passing them in.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the state every handler operates on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch whose writes reach the store on Write.
	NewBatch() Batch
}

// Batch collects writes and applies them together.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore can stack an isolated layer of changes on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a layer of uncommitted changes. Reads see the changes of the
// layer. Write flushes them to the parent and Discard drops them. A cache wrap
// can be wrapped again, which is how a failing transaction is rolled back
// without touching the block state.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root of the state.
//
// Changes are made through a CacheWrap and persisted with Commit. Get reads
// the last committed version only.
type CommitKVStore interface {
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap

	// Commit persists the pending changes as a new version.
	Commit() (CommitID, error)

	// LoadLatestVersion restores the most recent complete version, falling
	// back to an older one if the last commit was interrupted.
	LoadLatestVersion() error

	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
