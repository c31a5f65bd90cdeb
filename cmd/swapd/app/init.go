package app

import (
	"encoding/json"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/x/escrow"
	"github.com/iov-one/weaveswap/x/whitelist"
)

// GenesisToken declares a token created at genesis. A gated token can be
// moved only by whitelisted owners.
type GenesisToken struct {
	Ticker string
	Gated  bool
}

// GenInitOptions produces the application state for a development chain.
// The admin receives supply of every token, administers the whitelist and
// owns the escrow configuration. It is whitelisted from the start.
func GenInitOptions(admin weave.Address, supply uint64, tokens []GenesisToken) (weave.Options, error) {
	if err := admin.Validate(); err != nil {
		return nil, errors.Wrap(err, "admin")
	}
	if len(tokens) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "tokens")
	}

	type dict map[string]interface{}
	currencies := make([]dict, 0, len(tokens))
	coins := make(coin.Coins, 0, len(tokens))
	for _, t := range tokens {
		if !coin.IsCC(t.Ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "ticker %q", t.Ticker)
		}
		hook := ""
		if t.Gated {
			hook = whitelist.HookName
		}
		currencies = append(currencies, dict{
			"ticker": t.Ticker,
			"name":   t.Ticker + " token",
			"hook":   hook,
		})
		coins = append(coins, coin.NewCoinp(supply, t.Ticker))
	}

	state := dict{
		"currencies": currencies,
		"cash": []dict{
			{"address": admin, "coins": coins},
		},
		"whitelist": []weave.Address{admin},
		"gconf": dict{
			"whitelist": whitelist.Configuration{Admin: admin},
			"escrow":    escrow.Configuration{Owner: admin},
		},
	}

	opts := make(weave.Options, len(state))
	for name, section := range state {
		raw, err := json.Marshal(section)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "marshal %s: %s", name, err)
		}
		opts[name] = raw
	}
	return opts, nil
}
