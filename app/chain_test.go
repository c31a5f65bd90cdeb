package app

import (
	"context"
	"testing"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/store"
	"github.com/iov-one/weaveswap/weavetest"
	"github.com/iov-one/weaveswap/weavetest/assert"
)

func TestChain(t *testing.T) {
	var (
		d1      = &weavetest.Decorator{}
		d2      = &weavetest.Decorator{}
		d3      = &weavetest.Decorator{}
		handler = &weavetest.Handler{}
		ctx     = context.Background()
		db      = store.MemStore()
	)

	var nilDecorator *weavetest.Decorator
	stack := ChainDecorators(d1, nil, d2).
		Chain(nilDecorator, d3).
		WithHandler(handler)

	_, err := stack.Check(ctx, db, nil)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, nil)
	assert.Nil(t, err)

	for i, d := range []*weavetest.Decorator{d1, d2, d3} {
		if d.CheckCallCount() != 1 || d.DeliverCallCount() != 1 {
			t.Errorf("decorator %d: want one call each, got %d check, %d deliver",
				i, d.CheckCallCount(), d.DeliverCallCount())
		}
	}
	assert.Equal(t, 2, handler.CallCount())

	// An error in the middle stops the chain.
	d2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, db, nil)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 2, d1.DeliverCallCount())
	assert.Equal(t, 2, d2.DeliverCallCount())
	assert.Equal(t, 1, d3.DeliverCallCount())
	assert.Equal(t, 1, handler.DeliverCallCount())
}

func TestChainOrder(t *testing.T) {
	var calls []string
	stack := ChainDecorators(
		&recordingDecorator{name: "first", calls: &calls},
		&recordingDecorator{name: "second", calls: &calls},
	).WithHandler(&weavetest.Handler{})

	if _, err := stack.Deliver(context.Background(), store.MemStore(), nil); err != nil {
		t.Fatalf("deliver: %s", err)
	}
	assert.Equal(t, []string{"first", "second"}, calls)
}

type recordingDecorator struct {
	name  string
	calls *[]string
}

func (r *recordingDecorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	*r.calls = append(*r.calls, r.name)
	return next.Check(ctx, db, tx)
}

func (r *recordingDecorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	*r.calls = append(*r.calls, r.name)
	return next.Deliver(ctx, db, tx)
}
