package app

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger hosts the application state. It owns the committed store, the
// pending block built on top of it and the handler stack that processes
// transactions.
//
// Transactions are processed one at a time. Each runs against its own cache
// wrap of the pending block, which is written only when the handler
// succeeds and discarded otherwise, so a failed transaction never leaves a
// trace. Commit persists the pending block as a new version.
type Ledger struct {
	mu sync.Mutex

	committed weave.CommitKVStore
	pending   weave.KVCacheWrap

	decoder weave.TxDecoder
	handler weave.Handler
	queries weave.QueryRouter

	logger  log.Logger
	chainID string
	// height of the last committed block
	height int64
}

// NewLedger loads the latest version of the given store and returns a ledger
// ready to process transactions on top of it.
func NewLedger(
	committed weave.CommitKVStore,
	decoder weave.TxDecoder,
	handler weave.Handler,
	queries weave.QueryRouter,
) (*Ledger, error) {
	if err := committed.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	info, err := committed.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(err, "latest version")
	}
	l := &Ledger{
		committed: committed,
		pending:   committed.CacheWrap(),
		decoder:   decoder,
		handler:   handler,
		queries:   queries,
		logger:    log.NewNopLogger(),
		height:    info.Version,
	}
	if l.chainID, err = loadChainID(l.pending); err != nil {
		return nil, err
	}
	return l, nil
}

// WithLogger sets the logger used by the ledger and passed to all handlers.
func (l *Ledger) WithLogger(logger log.Logger) *Ledger {
	l.mu.Lock()
	l.logger = logger
	l.mu.Unlock()
	return l
}

// ChainID returns the chain id set during the genesis or an empty string if
// the ledger was not initialized yet.
func (l *Ledger) ChainID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chainID
}

// Height returns the height of the last committed block.
func (l *Ledger) Height() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

// InitChain stores the chain id, loads the genesis state using given
// initializer and commits the result as the first block. It can be called
// only once in the lifetime of the ledger state.
func (l *Ledger) InitChain(gen *Genesis, init weave.Initializer) (weave.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID != "" {
		return weave.CommitID{}, errors.Wrapf(errors.ErrState, "genesis previously loaded for chain %q", l.chainID)
	}

	cache := l.pending.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return weave.CommitID{}, err
	}
	if err := init.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return weave.CommitID{}, errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return weave.CommitID{}, errors.Wrap(err, "write genesis")
	}
	l.chainID = gen.ChainID
	l.logger.Info("Chain initialized", "chainID", gen.ChainID)
	return l.commit()
}

// CheckTx validates given transaction against the pending state. The
// pending state is never modified.
func (l *Ledger) CheckTx(txBytes []byte, now time.Time) (*weave.CheckResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.loadTx(txBytes)
	if err != nil {
		return nil, err
	}
	ctx, err := l.blockContext(now, "check_tx", tx)
	if err != nil {
		return nil, err
	}

	cache := l.pending.CacheWrap()
	defer cache.Discard()
	return l.handler.Check(ctx, cache, tx)
}

// DeliverTx executes given transaction. All changes made by the
// transaction become part of the pending block only if the execution
// succeeds.
func (l *Ledger) DeliverTx(txBytes []byte, now time.Time) (*weave.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.loadTx(txBytes)
	if err != nil {
		return nil, err
	}
	ctx, err := l.blockContext(now, "deliver_tx", tx)
	if err != nil {
		return nil, err
	}

	cache := l.pending.CacheWrap()
	res, err := l.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write transaction")
	}
	return res, nil
}

// Commit persists the pending block and starts a new one.
func (l *Ledger) Commit() (weave.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commit()
}

func (l *Ledger) commit() (weave.CommitID, error) {
	if err := l.pending.Write(); err != nil {
		return weave.CommitID{}, errors.Wrap(err, "write pending block")
	}
	info, err := l.committed.Commit()
	if err != nil {
		return weave.CommitID{}, err
	}
	l.pending = l.committed.CacheWrap()
	l.height = info.Version
	l.logger.Debug("Commit", "height", info.Version)
	return info, nil
}

// Query runs the handler registered under given path against the committed
// state.
func (l *Ledger) Query(path, mod string, data []byte) ([]weave.Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := l.queries.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for path %q", path)
	}
	db := l.committed.CacheWrap()
	defer db.Discard()
	return h.Query(db, mod, data)
}

// View calls fn with a read only view of the committed state.
func (l *Ledger) View(fn func(db weave.ReadOnlyKVStore) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	db := l.committed.CacheWrap()
	defer db.Discard()
	return fn(db)
}

// blockContext returns the context of the block being built.
func (l *Ledger) blockContext(now time.Time, call string, tx weave.Tx) (weave.Context, error) {
	if l.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	if now.IsZero() {
		return nil, errors.Wrap(errors.ErrInput, "block time required")
	}
	ctx := context.Background()
	ctx = weave.WithChainID(ctx, l.chainID)
	ctx = weave.WithHeight(ctx, l.height+1)
	ctx = weave.WithBlockTime(ctx, now)
	ctx = weave.WithLogger(ctx, l.logger.With(
		"chainID", l.chainID,
		"height", l.height+1,
		"call", call,
		"path", weave.GetPath(tx),
	))
	return ctx, nil
}

// loadTx calls the decoder, and capture any panics
func (l *Ledger) loadTx(txBytes []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = l.decoder(txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode transaction")
	}
	return tx, nil
}
