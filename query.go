package weave

import (
	"fmt"
)

// KeyQueryMod requests an exact key match. It is the only query mode
// supported by buckets and indexes.
const KeyQueryMod = ""

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns a model holding given key and value.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers read only queries against the committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister registers the query handlers of a single extension.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches queries by path, for example "/escrows" or
// "/escrows/maker".
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns a router with no routes.
func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with this router.
func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, reg := range regs {
		reg(r)
	}
}

// Register adds a handler for given path. It panics if the path is taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for given path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
