package cash

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/orm"
	"github.com/iov-one/weaveswap/x/currency"
)

// TransferGate is implemented by extensions that must approve movements of
// the tokens that name them in their hook.
//
// owner is the owner of the source wallet, which for custody accounts is not
// the same as the wallet address.
type TransferGate interface {
	AllowTransfer(db weave.ReadOnlyKVStore, ticker string, owner, dest weave.Address, amount coin.Coin) error
}

// TransferGateFunc adapts a function to the TransferGate interface.
type TransferGateFunc func(db weave.ReadOnlyKVStore, ticker string, owner, dest weave.Address, amount coin.Coin) error

func (fn TransferGateFunc) AllowTransfer(db weave.ReadOnlyKVStore, ticker string, owner, dest weave.Address, amount coin.Coin) error {
	return fn(db, ticker, owner, dest, amount)
}

// Controller moves coins between wallets. A failed call may leave partial
// writes behind, so it must run against a cache wrapped store that is
// discarded on error.
type Controller struct {
	wallets orm.ModelBucket
	tokens  *currency.TokenInfoBucket
	gates   map[string]TransferGate
}

// NewController returns a controller without any transfer gates. Tokens that
// name a hook cannot move until a gate with that name is registered.
func NewController() *Controller {
	return &Controller{
		wallets: NewBucket(),
		tokens:  currency.NewTokenInfoBucket(),
		gates:   make(map[string]TransferGate),
	}
}

// WithGate registers a transfer gate under given hook name.
func (c *Controller) WithGate(hook string, gate TransferGate) *Controller {
	c.gates[hook] = gate
	return c
}

// Balance returns all coins held by given address. An address without a
// wallet holds nothing.
func (c *Controller) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coins, error) {
	var w Wallet
	switch err := c.wallets.One(db, addr, &w); {
	case err == nil:
		return w.Coins, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// Transfer moves amount from the src wallet to dest. The auth condition must
// be the owner of the source wallet. The destination wallet is created when
// missing and is owned by its own address.
func (c *Controller) Transfer(db weave.KVStore, auth weave.Condition, src, dest weave.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	var from Wallet
	if err := c.wallets.One(db, src, &from); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrEmpty, "no wallet %s", src)
		}
		return err
	}
	if !auth.Address().Equals(from.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own %s", auth, src)
	}
	if err := c.allow(db, from.Owner, dest, amount); err != nil {
		return err
	}
	return c.move(db, src, &from, dest, amount)
}

// OpenAccount creates an account holding given token on behalf of the owner.
// The account address is returned.
//
// Coins sent to the account address before it was opened are adopted by the
// account. Tokens other than the account token stay locked in it.
func (c *Controller) OpenAccount(db weave.KVStore, owner weave.Address, ticker string) (weave.Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if _, err := c.tokens.Token(db, ticker); err != nil {
		return nil, err
	}
	addr := AccountAddress(owner, ticker)
	w, err := c.getOrCreate(db, addr)
	if err != nil {
		return nil, err
	}
	if w.Ticker != "" || !w.Owner.Equals(addr) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	}
	w.Owner = owner
	w.Ticker = ticker
	if err := c.wallets.Put(db, addr, w); err != nil {
		return nil, err
	}
	return addr, nil
}

// CloseAccount moves all coins of the account token to the recipient and
// removes the account. The auth condition must be the owner of the account.
//
// An account still holding other tokens is not removed. It is handed over to
// its own address instead.
func (c *Controller) CloseAccount(db weave.KVStore, auth weave.Condition, account, recipient weave.Address) error {
	if err := recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	var w Wallet
	if err := c.wallets.One(db, account, &w); err != nil {
		return err
	}
	if !auth.Address().Equals(w.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own %s", auth, account)
	}
	if w.Ticker == "" {
		return errors.Wrapf(errors.ErrState, "%s is not an account", account)
	}
	if amount := w.Coins.Balance(w.Ticker); !amount.IsZero() {
		if err := c.allow(db, w.Owner, recipient, amount); err != nil {
			return err
		}
		if err := c.move(db, account, &w, recipient, amount); err != nil {
			return err
		}
	}
	if !w.Coins.IsEmpty() {
		w.Owner = account
		w.Ticker = ""
		return c.wallets.Put(db, account, &w)
	}
	return c.wallets.Delete(db, account)
}

// Mint creates new coins in the destination wallet. This is used by genesis
// and is not exposed as a message.
func (c *Controller) Mint(db weave.KVStore, dest weave.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if _, err := c.tokens.Token(db, amount.Ticker); err != nil {
		return err
	}
	if err := c.accepts(db, dest, amount.Ticker); err != nil {
		return err
	}
	return c.credit(db, dest, amount)
}

// allow runs the token level checks: known token, not frozen and approved by
// the gate named in the token hook.
func (c *Controller) allow(db weave.ReadOnlyKVStore, owner, dest weave.Address, amount coin.Coin) error {
	token, err := c.tokens.Token(db, amount.Ticker)
	if err != nil {
		return err
	}
	if token.Frozen {
		return errors.Wrapf(errors.ErrFrozen, "token %s", amount.Ticker)
	}
	if token.Hook == "" {
		return nil
	}
	gate, ok := c.gates[token.Hook]
	if !ok {
		return errors.Wrapf(errors.ErrDenied, "no gate registered for hook %q", token.Hook)
	}
	if err := gate.AllowTransfer(db, amount.Ticker, owner, dest, amount); err != nil {
		return errors.Wrapf(err, "%s gate", token.Hook)
	}
	return nil
}

func (c *Controller) move(db weave.KVStore, src weave.Address, from *Wallet, dest weave.Address, amount coin.Coin) error {
	if err := c.accepts(db, dest, amount.Ticker); err != nil {
		return err
	}
	left, err := from.Coins.Subtract(amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", src)
	}
	from.Coins = left
	if err := c.wallets.Put(db, src, from); err != nil {
		return err
	}
	return c.credit(db, dest, amount)
}

// credit adds amount to the dest wallet.
func (c *Controller) credit(db weave.KVStore, dest weave.Address, amount coin.Coin) error {
	to, err := c.getOrCreate(db, dest)
	if err != nil {
		return err
	}
	if to.Coins, err = to.Coins.Add(amount); err != nil {
		return err
	}
	return c.wallets.Put(db, dest, to)
}

// accepts fails if dest is an account for a token other than ticker.
func (c *Controller) accepts(db weave.ReadOnlyKVStore, dest weave.Address, ticker string) error {
	to, err := c.getOrCreate(db, dest)
	if err != nil {
		return err
	}
	if to.Ticker != "" && to.Ticker != ticker {
		return errors.Wrapf(errors.ErrCurrency, "account %s holds only %s", dest, to.Ticker)
	}
	return nil
}

func (c *Controller) getOrCreate(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.wallets.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Owner: addr}, nil
	default:
		return nil, err
	}
}
