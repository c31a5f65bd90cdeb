/*
Package coin defines the amounts moved by the ledger. A coin is an unsigned
integer amount of a single asset type, identified by its ticker.
*/
package coin

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

var humanCoinFormatRx = regexp.MustCompile(`^(\d+)\s*([A-Z]{3,4})$`)

// Coin is an amount of a single asset type.
type Coin struct {
	Ticker string `json:"ticker"`
	Amount uint64 `json:"amount"`
}

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins.
// Returns error if they are of different
// currencies, or if the combination would cause
// an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins represents no value and does not have a ticker
	// set then it has no influence on the addition result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", c.Ticker, o.Ticker)
	}
	if math.MaxUint64-c.Amount < o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	c.Amount += o.Amount
	return c, nil
}

// Subtract given amount. Returns ErrInsufficientAmount if the amount is
// greater than the coin value.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	if amount.IsZero() {
		return c, nil
	}
	if !c.SameType(amount) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", amount.Ticker, c.Ticker)
	}
	if c.Amount < amount.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s - %s", c, amount)
	}
	c.Amount -= amount.Amount
	return c, nil
}

// Compare will check values of two coins, without
// inspecting the currency code. It is up to the caller
// to determine if they want to check this.
//
// Returns 1 if c is larger, -1 if o is larger, 0 if equal
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount > o.Amount:
		return 1
	case c.Amount < o.Amount:
		return -1
	}
	return 0
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	return &Coin{
		Ticker: c.Ticker,
		Amount: c.Amount,
	}
}

// Validate ensures that the coin has a valid currency code.
// It accepts zero values, so you may want to make other checks in your
// business logic.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker)
	}
	return nil
}

// Marshal serializes the coin.
func (c *Coin) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

// Unmarshal deserializes the coin.
func (c *Coin) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

// UnmarshalJSON accepts both the human readable "<amount> <ticker>" string
// and the structured form.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Because UnmarshalJSON method is provided, we can no longer use
	// Coin type for this.
	var coin struct {
		Ticker string `json:"ticker"`
		Amount uint64 `json:"amount"`
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrapf(errors.ErrInput, "coin: %s", err)
	}
	c.Ticker = coin.Ticker
	c.Amount = coin.Amount
	return nil
}

// String provides a human readable representation of the coin. For a valid
// coin the result can be parsed back with ParseHumanFormat.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//   "<amount> <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount: %s", err)
	}
	return NewCoin(amount, m[2]), nil
}
