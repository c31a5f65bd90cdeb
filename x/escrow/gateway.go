package escrow

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/x/cash"
)

// Gateway moves value on behalf of the escrow handlers. Every call either
// succeeds or returns an error, partial results are discarded together with
// the transaction.
type Gateway interface {
	// Balance returns all coins held by given address.
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coins, error)

	// Transfer moves amount from src to dest. The auth condition must
	// own src.
	Transfer(db weave.KVStore, auth weave.Condition, src, dest weave.Address, amount coin.Coin) error

	// OpenAccount creates an account for given token, owned by owner and
	// returns its address. The account accepts only that token.
	OpenAccount(db weave.KVStore, owner weave.Address, ticker string) (weave.Address, error)

	// CloseAccount moves what is left of the account token to the recipient
	// and releases the account. The auth condition must own the account.
	CloseAccount(db weave.KVStore, auth weave.Condition, account, recipient weave.Address) error
}

var _ Gateway = (*cash.Controller)(nil)
