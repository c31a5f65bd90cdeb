package utils

import (
	"time"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and observes
// their processing time. Both are labeled with the message path and the
// result.
type Metrics struct {
	processed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ weave.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors with
// given registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weaveswap",
			Subsystem: "tx",
			Name:      "processed_total",
			Help:      "Total transactions processed, by call, message path and result.",
		}, []string{"call", "path", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weaveswap",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Time spent processing a transaction, by call and message path.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"call", "path"}),
	}
	for _, c := range []prometheus.Collector{m.processed, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(errors.ErrDuplicate, "register collector: %s", err)
		}
	}
	return m, nil
}

// Check counts every check call.
func (m *Metrics) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver counts every deliver call.
func (m *Metrics) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m *Metrics) observe(call string, tx weave.Tx, start time.Time, err error) {
	path := weave.GetPath(tx)
	m.duration.WithLabelValues(call, path).Observe(time.Since(start).Seconds())
	m.processed.WithLabelValues(call, path, resultLabel(err)).Inc()
}

// resultLabel maps an error to a label of low cardinality.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.ErrUnauthorized.Is(err):
		return "unauthorized"
	case errors.ErrNotFound.Is(err):
		return "not_found"
	case errors.ErrExpired.Is(err):
		return "expired"
	case errors.ErrDenied.Is(err):
		return "denied"
	case errors.ErrPanic.Is(err):
		return "panic"
	default:
		return "failed"
	}
}
