package utils

import (
	"time"

	"github.com/iov-one/weaveswap"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one log line per processed transaction with its message
// path and duration. Failures are logged as errors. A successful deliver is
// logged as info, a successful check only as debug.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	l := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		l.Error("check failed", "err", err)
	default:
		l.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		l.Error("deliver failed", "err", err)
	default:
		l.Info(res.Log)
	}
	return res, err
}

func txLogger(ctx weave.Context, tx weave.Tx, start time.Time) log.Logger {
	return weave.GetLogger(ctx).With(
		"msgPath", weave.GetPath(tx),
		"durationMicro", time.Since(start)/time.Microsecond,
	)
}
