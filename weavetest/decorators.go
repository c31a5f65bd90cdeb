package weavetest

import "github.com/iov-one/weaveswap"

// Decorator is a weave.Decorator that either fails with the configured
// error or passes the call to the next handler. All calls are counted,
// including the failing ones.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	calls counter
}

var _ weave.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	d.calls.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	d.calls.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.calls.check }
func (d *Decorator) DeliverCallCount() int { return d.calls.deliver }
func (d *Decorator) CallCount() int        { return d.calls.total() }
