package utils

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

// Recovery converts a panic of any handler down the stack into an ErrPanic
// error, so that the transaction fails and its changes are discarded
// instead of crashing the node.
type Recovery struct{}

var _ weave.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (res *weave.CheckResult, err error) {
	defer recoverInto(ctx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (res *weave.DeliverResult, err error) {
	defer recoverInto(ctx, &err)
	return next.Deliver(ctx, db, tx)
}

func recoverInto(ctx weave.Context, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	weave.GetLogger(ctx).Error("Recovered from panic", "err", *err)
}
