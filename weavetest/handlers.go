package weavetest

import "github.com/iov-one/weaveswap"

// Handler is a weave.Handler that returns preconfigured results and counts
// its calls.
type Handler struct {
	CheckResult weave.CheckResult
	CheckErr    error

	DeliverResult weave.DeliverResult
	DeliverErr    error

	calls counter
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	h.calls.check++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	h.calls.deliver++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int   { return h.calls.check }
func (h *Handler) DeliverCallCount() int { return h.calls.deliver }
func (h *Handler) CallCount() int        { return h.calls.total() }

type counter struct {
	check   int
	deliver int
}

func (c counter) total() int {
	return c.check + c.deliver
}
