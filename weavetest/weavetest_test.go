package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()
	ctx := context.Background()

	auth := &Auth{Signer: a, Signers: []weave.Condition{b}}
	if n := len(auth.GetConditions(ctx)); n != 2 {
		t.Fatalf("want 2 conditions, got %d", n)
	}
	if !auth.HasAddress(ctx, a.Address()) || !auth.HasAddress(ctx, b.Address()) {
		t.Fatal("signer not authenticated")
	}
	if auth.HasAddress(ctx, c.Address()) {
		t.Fatal("stranger authenticated")
	}
	if (&Auth{}).HasAddress(ctx, a.Address()) {
		t.Fatal("empty auth must not authenticate")
	}
}

func TestCtxAuth(t *testing.T) {
	a, b := NewCondition(), NewCondition()
	auth := &CtxAuth{Key: "auth"}

	ctx := context.Background()
	if auth.GetConditions(ctx) != nil {
		t.Fatal("empty context must have no conditions")
	}

	ctx = auth.SetConditions(ctx, a)
	if !auth.HasAddress(ctx, a.Address()) {
		t.Fatal("signer not authenticated")
	}
	if auth.HasAddress(ctx, b.Address()) {
		t.Fatal("stranger authenticated")
	}

	other := &CtxAuth{Key: "other"}
	if other.HasAddress(ctx, a.Address()) {
		t.Fatal("conditions leaked between keys")
	}
}

func TestHandlerAndDecoratorCounts(t *testing.T) {
	ctx := context.Background()
	h := &Handler{DeliverErr: errors.ErrState}
	d := &Decorator{CheckErr: errors.ErrUnauthorized}

	if _, err := d.Check(ctx, nil, nil, h); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if _, err := d.Deliver(ctx, nil, nil, h); !errors.ErrState.Is(err) {
		t.Fatalf("want ErrState, got %v", err)
	}
	if _, err := h.Check(ctx, nil, nil); err != nil {
		t.Fatalf("unexpected check error: %v", err)
	}

	if d.CheckCallCount() != 1 || d.DeliverCallCount() != 1 || d.CallCount() != 2 {
		t.Fatalf("unexpected decorator counts: %d/%d", d.CheckCallCount(), d.DeliverCallCount())
	}
	if h.CheckCallCount() != 1 || h.DeliverCallCount() != 1 || h.CallCount() != 2 {
		t.Fatalf("unexpected handler counts: %d/%d", h.CheckCallCount(), h.DeliverCallCount())
	}
}
