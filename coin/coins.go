package coin

import (
	"sort"

	"github.com/iov-one/weaveswap/errors"
)

// Coins is a set of coins of different asset types, sorted by ticker.
// Zero value coins are never kept.
type Coins []*Coin

// CombineCoins creates a Coins containing all given coins.
// It will sort them and combine duplicates to produce
// a normalized array.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a deep copy of the coins.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add modifies the set by adding given coin. The result is a new set, the
// original is not changed.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	res := cs.Clone()
	if found, _ := res.findCoin(c.Ticker); found != nil {
		sum, err := found.Add(c)
		if err != nil {
			return nil, err
		}
		found.Amount = sum.Amount
		return res, nil
	}
	res = append(res, c.Clone())
	sort.Slice(res, func(i, j int) bool { return res[i].Ticker < res[j].Ticker })
	return res, nil
}

// Subtract removes given amount from the set. ErrInsufficientAmount is
// returned if the set does not contain enough of the asset.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	res := cs.Clone()
	found, i := res.findCoin(c.Ticker)
	if found == nil {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	left, err := found.Subtract(c)
	if err != nil {
		return nil, err
	}
	if left.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	found.Amount = left.Amount
	return res, nil
}

// Contains returns true if the set holds at least the given amount.
func (cs Coins) Contains(c Coin) bool {
	found, _ := cs.findCoin(c.Ticker)
	if found == nil {
		return c.IsZero()
	}
	return found.IsGTE(c)
}

// Balance returns the amount of the asset held. The result always has the
// ticker set, even when zero.
func (cs Coins) Balance(ticker string) Coin {
	found, _ := cs.findCoin(ticker)
	if found == nil {
		return NewCoin(0, ticker)
	}
	return *found
}

func (cs Coins) findCoin(ticker string) (*Coin, int) {
	for i, c := range cs {
		if c.Ticker == ticker {
			return c, i
		}
	}
	return nil, -1
}

// IsEmpty returns if nothing is in the set
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if both sets hold exactly the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are valid, non zero, and sorted by
// unique tickers.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrAmount, "zero %s", c.Ticker)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrap(errors.ErrCurrency, "coins not sorted or duplicated")
		}
	}
	return nil
}
