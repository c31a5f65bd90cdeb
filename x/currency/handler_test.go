package currency

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/orm"
	"github.com/iov-one/weaveswap/store"
	"github.com/iov-one/weaveswap/weavetest"
	"github.com/iov-one/weaveswap/weavetest/assert"
)

func TestNewTokenInfoHandler(t *testing.T) {
	permA := weavetest.NewCondition()
	permB := weavetest.NewCondition()

	cases := map[string]struct {
		signers         []weave.Condition
		issuer          weave.Address
		initState       []orm.Object
		msg             weave.Msg
		wantCheckErr    *errors.Error
		wantDeliverErr  *errors.Error
		query           string
		wantQueryResult *TokenInfo
	}{
		"updating token info": {
			signers: []weave.Condition{permA, permB},
			issuer:  permA.Address(),
			initState: []orm.Object{
				NewTokenInfo("DOGE", "Doge Coin", ""),
			},
			msg:             &CreateMsg{Ticker: "DOGE", Name: "Doge Coin"},
			wantCheckErr:    errors.ErrDuplicate,
			wantDeliverErr:  errors.ErrDuplicate,
			query:           "DOGE",
			wantQueryResult: &TokenInfo{Name: "Doge Coin"},
		},
		"insufficient permission": {
			signers:        []weave.Condition{permB},
			issuer:         permA.Address(),
			msg:            &CreateMsg{Ticker: "DOGE", Name: "Doge Coin"},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"invalid hook name": {
			signers:        []weave.Condition{permA},
			msg:            &CreateMsg{Ticker: "DOGE", Name: "Doge Coin", Hook: "Not A Hook"},
			wantCheckErr:   errors.ErrMsg,
			wantDeliverErr: errors.ErrMsg,
		},
		"query unknown ticker": {
			signers:         []weave.Condition{permA, permB},
			issuer:          permA.Address(),
			msg:             &CreateMsg{Ticker: "DOGE", Name: "Doge Coin"},
			query:           "UNK",
			wantQueryResult: nil,
		},
		"ok": {
			signers:         []weave.Condition{permA, permB},
			issuer:          permA.Address(),
			msg:             &CreateMsg{Ticker: "TKR", Name: "tikr", Hook: "whitelist"},
			query:           "TKR",
			wantQueryResult: &TokenInfo{Name: "tikr", Hook: "whitelist"},
		},
		"anyone can issue without an issuer": {
			signers:         []weave.Condition{permB},
			msg:             &CreateMsg{Ticker: "FRE", Name: "free coin"},
			query:           "FRE",
			wantQueryResult: &TokenInfo{Name: "free coin"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			bucket := NewTokenInfoBucket()
			for _, obj := range tc.initState {
				if err := bucket.Save(db, obj); err != nil {
					t.Fatalf("init state: cannot save: %s", err)
				}
			}

			auth := &weavetest.Auth{Signers: tc.signers}
			h := NewCreateTokenInfoHandler(auth, tc.issuer)
			tx := &weavetest.Tx{Msg: tc.msg}
			ctx := context.Background()
			if _, err := h.Check(ctx, db, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("check error: want %v, got %+v", tc.wantCheckErr, err)
			}
			if _, err := h.Deliver(ctx, db, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("deliver error: want %v, got %+v", tc.wantDeliverErr, err)
			}

			if tc.query == "" {
				return
			}
			obj, err := bucket.Get(db, tc.query)
			assert.Nil(t, err)
			if tc.wantQueryResult == nil {
				if obj != nil {
					t.Fatalf("unexpected query result: %#v", obj.Value())
				}
				return
			}
			assert.Equal(t, tc.wantQueryResult, obj.Value())
		})
	}
}

func TestFreezeTokenHandler(t *testing.T) {
	issuer := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	db := store.MemStore()
	bucket := NewTokenInfoBucket()
	assert.Nil(t, bucket.Save(db, NewTokenInfo("IOV", "iov token", "whitelist")))

	h := NewFreezeTokenHandler(&weavetest.Auth{Signer: stranger}, issuer.Address())
	tx := &weavetest.Tx{Msg: &FreezeMsg{Ticker: "IOV", Frozen: true}}
	_, err := h.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	h = NewFreezeTokenHandler(&weavetest.Auth{Signer: issuer}, issuer.Address())
	_, err = h.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)

	info, err := bucket.Token(db, "IOV")
	assert.Nil(t, err)
	assert.Equal(t, &TokenInfo{Name: "iov token", Hook: "whitelist", Frozen: true}, info)

	unknown := &weavetest.Tx{Msg: &FreezeMsg{Ticker: "ABC", Frozen: true}}
	_, err = h.Deliver(context.Background(), db, unknown)
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestGenesisTokens(t *testing.T) {
	const genesis = `{
		"currencies": [
			{"ticker": "IOV", "name": "iov token", "hook": "whitelist"},
			{"ticker": "ETH", "name": "ether"}
		]
	}`
	var opts weave.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot decode genesis: %s", err)
	}
	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	bucket := NewTokenInfoBucket()
	info, err := bucket.Token(db, "IOV")
	assert.Nil(t, err)
	assert.Equal(t, "whitelist", info.Hook)
	info, err = bucket.Token(db, "ETH")
	assert.Nil(t, err)
	assert.Equal(t, "ether", info.Name)

	_, err = bucket.Token(db, "BTC")
	assert.IsErr(t, errors.ErrCurrency, err)
}
