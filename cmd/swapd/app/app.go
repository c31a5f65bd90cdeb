/*
Package app wires the escrow extensions into a complete application: the
decorator chain, the message router, the query router and the ledger that
hosts the state.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/app"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/store/iavl"
	"github.com/iov-one/weaveswap/x"
	"github.com/iov-one/weaveswap/x/cash"
	"github.com/iov-one/weaveswap/x/currency"
	"github.com/iov-one/weaveswap/x/escrow"
	"github.com/iov-one/weaveswap/x/sigs"
	"github.com/iov-one/weaveswap/x/utils"
	"github.com/iov-one/weaveswap/x/whitelist"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// CashControl returns a controller for cash functions with all transfer
// gates registered.
func CashControl() *cash.Controller {
	return cash.NewController().
		WithGate(whitelist.HookName, whitelist.NewGate())
}

// Chain returns the decorators every transaction passes before it is
// routed. Recovery sits below logging and metrics so that a panic is still
// logged and counted as a failure.
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		metrics,
		utils.NewRecovery(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching all messages supported by the
// application. When issuer is not nil, only that address can manage tokens.
func Router(authFn x.Authenticator, issuer weave.Address) *app.Router {
	r := app.NewRouter()
	control := CashControl()
	currency.RegisterRoutes(r, authFn, issuer)
	cash.RegisterRoutes(r, authFn, control)
	whitelist.RegisterRoutes(r, authFn)
	escrow.RegisterRoutes(r, authFn, control)
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/escrows", "/wallets", "/tokens", "/whitelist" and "/auth".
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		escrow.RegisterQuery,
		cash.RegisterQuery,
		currency.RegisterQuery,
		whitelist.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator chain.
// Metrics are registered with given registerer.
func Stack(issuer weave.Address, reg prometheus.Registerer) (weave.Handler, error) {
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return nil, errors.Wrap(err, "metrics")
	}
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn, issuer)), nil
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		&currency.Initializer{},
		cash.NewInitializer(CashControl()),
		&whitelist.Initializer{},
		escrow.Initializer{},
	)
}

// Application constructs a ledger using given handler, persisting the
// state under dbPath. An empty path keeps everything in memory.
func Application(h weave.Handler, dbPath string) (*app.Ledger, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return app.NewLedger(kv, TxDecoder, h, QueryRouter())
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// Some callers add a ".db" suffix, which leveldb adds on its own.
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
