package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/store"
	"github.com/iov-one/weaveswap/weavetest"
	"github.com/iov-one/weaveswap/weavetest/assert"
)

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *limits
		WantSaveErr *errors.Error
	}{
		"valid configuration": {
			Conf: &limits{Owner: weavetest.NewCondition().Address(), MaxSeconds: 42, MinDeposit: coin.NewCoin(5, "AAA")},
		},
		"invalid address cannot be saved": {
			Conf:        &limits{Owner: weave.Address("too short"), MinDeposit: coin.NewCoin(5, "AAA")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid coin cannot be saved": {
			Conf:        &limits{Owner: weavetest.NewCondition().Address()},
			WantSaveErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "swaplimits", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got limits
			if err := Load(db, "swaplimits", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var got limits
	assert.IsErr(t, errors.ErrNotFound, Load(db, "swaplimits", &got))
}

func TestInitConfig(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	raw, err := json.Marshal(map[string]interface{}{
		"swaplimits": map[string]interface{}{
			"Owner":      owner,
			"MaxSeconds": 7,
			"MinDeposit": "3 AAA",
		},
	})
	assert.Nil(t, err)
	opts := weave.Options{"gconf": raw}

	db := store.MemStore()
	var c limits
	assert.Nil(t, InitConfig(db, opts, "swaplimits", &c))

	var got limits
	assert.Nil(t, Load(db, "swaplimits", &got))
	assert.Equal(t, limits{Owner: owner, MaxSeconds: 7, MinDeposit: coin.NewCoin(3, "AAA")}, got)

	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, opts, "otherpkg", &c))
}
