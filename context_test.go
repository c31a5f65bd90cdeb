package weave_test

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/weaveswap"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	_, ok := weave.GetHeight(ctx)
	assert.False(t, ok)

	ctx = weave.WithHeight(ctx, 7)
	h, ok := weave.GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), h)

	assert.Panics(t, func() { weave.WithHeight(ctx, 8) })
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { weave.GetChainID(ctx) })
	assert.Panics(t, func() { weave.WithChainID(ctx, "bad") })

	ctx = weave.WithChainID(ctx, "swap-chain")
	assert.Equal(t, "swap-chain", weave.GetChainID(ctx))
	assert.Panics(t, func() { weave.WithChainID(ctx, "other-chain") })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, weave.DefaultLogger, weave.GetLogger(ctx))

	logger := log.NewNopLogger().With("module", "test")
	ctx = weave.WithLogger(ctx, logger)
	assert.Equal(t, logger, weave.GetLogger(ctx))

	ctx = weave.WithLogInfo(ctx, "height", 1)
	assert.NotNil(t, weave.GetLogger(ctx))
}

func TestIsExpired(t *testing.T) {
	now := weave.AsUnixTime(time.Now())
	ctx := weave.WithBlockTime(context.Background(), now.Time())

	cases := map[string]struct {
		expires weave.UnixTime
		want    bool
	}{
		"past":    {expires: now.Add(-time.Minute), want: true},
		"now":     {expires: now, want: true},
		"future":  {expires: now.Add(time.Second), want: false},
		"faraway": {expires: now.Add(24 * time.Hour), want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, weave.IsExpired(ctx, tc.expires))
		})
	}

	assert.Panics(t, func() { weave.IsExpired(context.Background(), now) })
	assert.Panics(t, func() { weave.WithBlockTime(ctx, time.Now()) })
}
