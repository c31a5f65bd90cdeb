package main

import (
	"encoding/hex"
	"flag"
	"time"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/coin"
)

// flAddress registers an address flag. The value can be given in any format
// accepted by weave.ParseAddress.
func flAddress(fl *flag.FlagSet, name, usage string) *weave.Address {
	var a weave.Address
	fl.Var((*addressValue)(&a), name, usage)
	return &a
}

type addressValue weave.Address

func (a *addressValue) String() string {
	if a == nil || len(*a) == 0 {
		return ""
	}
	return weave.Address(*a).String()
}

func (a *addressValue) Set(raw string) error {
	addr, err := weave.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = addressValue(addr)
	return nil
}

// flCoin registers a coin flag using the human readable "<amount> <ticker>"
// format.
func flCoin(fl *flag.FlagSet, name, usage string) *coin.Coin {
	var c coin.Coin
	fl.Var((*coinValue)(&c), name, usage)
	return &c
}

type coinValue coin.Coin

func (c *coinValue) String() string {
	if c == nil {
		return ""
	}
	return coin.Coin(*c).String()
}

func (c *coinValue) Set(raw string) error {
	parsed, err := coin.ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = coinValue(parsed)
	return nil
}

// flHex registers a flag holding hex encoded binary data.
func flHex(fl *flag.FlagSet, name, usage string) *[]byte {
	var b []byte
	fl.Var((*hexValue)(&b), name, usage)
	return &b
}

type hexValue []byte

func (h *hexValue) String() string {
	if h == nil {
		return ""
	}
	return hex.EncodeToString(*h)
}

func (h *hexValue) Set(raw string) error {
	b, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*h = b
	return nil
}

// flTime registers a flag holding a block time in RFC3339 format. The
// current time is used when the flag is not given.
func flTime(fl *flag.FlagSet, name, usage string) *time.Time {
	var t time.Time
	fl.Var((*timeValue)(&t), name, usage)
	return &t
}

type timeValue time.Time

func (t *timeValue) String() string {
	if t == nil || time.Time(*t).IsZero() {
		return ""
	}
	return time.Time(*t).Format(time.RFC3339)
}

func (t *timeValue) Set(raw string) error {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return err
	}
	*t = timeValue(parsed)
	return nil
}
