package app

import (
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/store/iavl"
	"github.com/iov-one/weaveswap/weavetest"
	"github.com/iov-one/weaveswap/weavetest/assert"
)

var counterKey = []byte("counter")

// counterDecoder turns raw bytes into a transaction routed to the counter
// handler.
func counterDecoder(raw []byte) (weave.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/counter", Serialized: raw}}, nil
}

// counterHandler increments the counter stored in the database. It fails
// after the increment if the message content is "fail".
type counterHandler struct {
	seenHeight int64
	seenTime   time.Time
}

func (h *counterHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.increment(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *counterHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	n, err := h.increment(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: encodeCounter(n)}, nil
}

func (h *counterHandler) increment(ctx weave.Context, db weave.KVStore, tx weave.Tx) (uint64, error) {
	h.seenHeight, _ = weave.GetHeight(ctx)
	h.seenTime, _ = weave.BlockTime(ctx)

	n, err := readCounter(db)
	if err != nil {
		return 0, err
	}
	n++
	if err := db.Set(counterKey, encodeCounter(n)); err != nil {
		return 0, err
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return 0, err
	}
	if raw, _ := msg.Marshal(); string(raw) == "fail" {
		return 0, errors.Wrap(errors.ErrState, "failing on purpose")
	}
	return n, nil
}

func readCounter(db weave.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(counterKey)
	if err != nil || raw == nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw), nil
}

func encodeCounter(n uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return raw
}

// counterQuery returns the raw counter value.
type counterQuery struct{}

func (counterQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	raw, err := db.Get(counterKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return []weave.Model{weave.Pair(counterKey, raw)}, nil
}

func newCounterLedger(t testing.TB) (*Ledger, *counterHandler) {
	t.Helper()

	h := &counterHandler{}
	r := NewRouter()
	r.Handle(&weavetest.Msg{RoutePath: "test/counter"}, h)

	qr := weave.NewQueryRouter()
	qr.Register("/counter", counterQuery{})

	l, err := NewLedger(iavl.NewMemCommitStore(), counterDecoder, r, qr)
	if err != nil {
		t.Fatalf("cannot create ledger: %s", err)
	}
	gen := &Genesis{ChainID: "test-chain"}
	if _, err := l.InitChain(gen, ChainInitializers()); err != nil {
		t.Fatalf("cannot init chain: %s", err)
	}
	return l, h
}

func queryCounter(t testing.TB, l *Ledger) uint64 {
	t.Helper()
	models, err := l.Query("/counter", weave.KeyQueryMod, nil)
	if err != nil {
		t.Fatalf("query: %s", err)
	}
	if len(models) == 0 {
		return 0
	}
	return binary.BigEndian.Uint64(models[0].Value)
}

func TestLedgerDeliverAndCommit(t *testing.T) {
	l, h := newCounterLedger(t)
	now := time.Now().UTC()

	res, err := l.DeliverTx([]byte("ok"), now)
	assert.Nil(t, err)
	assert.Equal(t, encodeCounter(1), res.Data)
	assert.Equal(t, int64(2), h.seenHeight)
	assert.Equal(t, now, h.seenTime)

	// Queries see only committed state.
	assert.Equal(t, uint64(0), queryCounter(t, l))

	info, err := l.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), info.Version)
	assert.Equal(t, uint64(1), queryCounter(t, l))

	_, err = l.DeliverTx([]byte("ok"), now)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), h.seenHeight)
}

func TestLedgerFailedTransactionIsDiscarded(t *testing.T) {
	l, _ := newCounterLedger(t)
	now := time.Now()

	_, err := l.DeliverTx([]byte("ok"), now)
	assert.Nil(t, err)
	_, err = l.DeliverTx([]byte("fail"), now)
	assert.IsErr(t, errors.ErrState, err)
	_, err = l.Commit()
	assert.Nil(t, err)

	assert.Equal(t, uint64(1), queryCounter(t, l))
}

func TestLedgerCheckDoesNotModifyState(t *testing.T) {
	l, _ := newCounterLedger(t)
	now := time.Now()

	for i := 0; i < 3; i++ {
		_, err := l.CheckTx([]byte("ok"), now)
		assert.Nil(t, err)
	}
	_, err := l.CheckTx([]byte("fail"), now)
	assert.IsErr(t, errors.ErrState, err)

	_, err = l.Commit()
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), queryCounter(t, l))
}

func TestLedgerRejects(t *testing.T) {
	l, _ := newCounterLedger(t)

	_, err := l.DeliverTx(nil, time.Now())
	assert.IsErr(t, errors.ErrInput, err)

	_, err = l.DeliverTx([]byte("ok"), time.Time{})
	assert.IsErr(t, errors.ErrInput, err)

	_, err = l.Query("/unknown", weave.KeyQueryMod, nil)
	assert.IsErr(t, errors.ErrNotFound, err)

	uninitialized, err := NewLedger(iavl.NewMemCommitStore(), counterDecoder, &weavetest.Handler{}, weave.NewQueryRouter())
	assert.Nil(t, err)
	_, err = uninitialized.DeliverTx([]byte("ok"), time.Now())
	assert.IsErr(t, errors.ErrState, err)
}

func TestLedgerDecoderPanic(t *testing.T) {
	decoder := func([]byte) (weave.Tx, error) { panic("boom") }
	l, err := NewLedger(iavl.NewMemCommitStore(), decoder, &weavetest.Handler{}, weave.NewQueryRouter())
	assert.Nil(t, err)
	_, err = l.InitChain(&Genesis{ChainID: "test-chain"}, ChainInitializers())
	assert.Nil(t, err)

	_, err = l.DeliverTx([]byte("ok"), time.Now())
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestLedgerSerializesTransactions(t *testing.T) {
	l, _ := newCounterLedger(t)
	now := time.Now()

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.DeliverTx([]byte("ok"), now); err != nil {
				t.Errorf("deliver: %s", err)
			}
		}()
	}
	wg.Wait()

	_, err := l.Commit()
	assert.Nil(t, err)
	assert.Equal(t, uint64(workers), queryCounter(t, l))
}

func TestLedgerView(t *testing.T) {
	l, _ := newCounterLedger(t)

	_, err := l.DeliverTx([]byte("ok"), time.Now())
	assert.Nil(t, err)

	read := func() uint64 {
		var n uint64
		err := l.View(func(db weave.ReadOnlyKVStore) error {
			var err error
			n, err = readCounter(db)
			return err
		})
		assert.Nil(t, err)
		return n
	}
	assert.Equal(t, uint64(0), read())

	_, err = l.Commit()
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), read())

	err = l.View(func(weave.ReadOnlyKVStore) error { return errors.ErrState })
	assert.IsErr(t, errors.ErrState, err)
}
