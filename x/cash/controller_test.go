package cash

import (
	"testing"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/store"
	"github.com/iov-one/weaveswap/weavetest"
	"github.com/iov-one/weaveswap/weavetest/assert"
	"github.com/iov-one/weaveswap/x/currency"
)

func TestControllerTransfer(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	blocked := weavetest.NewCondition()

	deny := TransferGateFunc(func(db weave.ReadOnlyKVStore, ticker string, owner, dest weave.Address, amount coin.Coin) error {
		if owner.Equals(blocked.Address()) {
			return errors.Wrap(errors.ErrDenied, "blocked")
		}
		return nil
	})

	cases := map[string]struct {
		auth      weave.Condition
		src       weave.Address
		amount    coin.Coin
		wantErr   *errors.Error
		wantAlice coin.Coins
		wantBob   coin.Coins
	}{
		"move part of the balance": {
			auth:      alice,
			src:       alice.Address(),
			amount:    coin.NewCoin(30, "IOV"),
			wantAlice: coin.Coins{coin.NewCoinp(50, "ETH"), coin.NewCoinp(70, "IOV"), coin.NewCoinp(5, "NOG")},
			wantBob:   coin.Coins{coin.NewCoinp(30, "IOV")},
		},
		"move everything of one ticker": {
			auth:      alice,
			src:       alice.Address(),
			amount:    coin.NewCoin(50, "ETH"),
			wantAlice: coin.Coins{coin.NewCoinp(100, "IOV"), coin.NewCoinp(5, "NOG")},
			wantBob:   coin.Coins{coin.NewCoinp(50, "ETH")},
		},
		"insufficient funds": {
			auth:    alice,
			src:     alice.Address(),
			amount:  coin.NewCoin(101, "IOV"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"no wallet of this ticker": {
			auth:    alice,
			src:     alice.Address(),
			amount:  coin.NewCoin(1, "BTC"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"not the owner": {
			auth:    bob,
			src:     alice.Address(),
			amount:  coin.NewCoin(1, "IOV"),
			wantErr: errors.ErrUnauthorized,
		},
		"empty source": {
			auth:    bob,
			src:     bob.Address(),
			amount:  coin.NewCoin(1, "IOV"),
			wantErr: errors.ErrEmpty,
		},
		"zero amount": {
			auth:    alice,
			src:     alice.Address(),
			amount:  coin.NewCoin(0, "IOV"),
			wantErr: errors.ErrAmount,
		},
		"unknown token": {
			auth:    alice,
			src:     alice.Address(),
			amount:  coin.NewCoin(1, "XYZ"),
			wantErr: errors.ErrCurrency,
		},
		"frozen token": {
			auth:    alice,
			src:     alice.Address(),
			amount:  coin.NewCoin(1, "FRZ"),
			wantErr: errors.ErrFrozen,
		},
		"gate denies the owner": {
			auth:    blocked,
			src:     blocked.Address(),
			amount:  coin.NewCoin(1, "WLT"),
			wantErr: errors.ErrDenied,
		},
		"token hook without a gate": {
			auth:    alice,
			src:     alice.Address(),
			amount:  coin.NewCoin(1, "NOG"),
			wantErr: errors.ErrDenied,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			createTokens(t, db)
			c := NewController().WithGate("gated", deny)

			assert.Nil(t, c.Mint(db, alice.Address(), coin.NewCoin(100, "IOV")))
			assert.Nil(t, c.Mint(db, alice.Address(), coin.NewCoin(50, "ETH")))
			assert.Nil(t, c.Mint(db, alice.Address(), coin.NewCoin(5, "NOG")))
			assert.Nil(t, c.Mint(db, blocked.Address(), coin.NewCoin(5, "WLT")))
			freeze(t, db, "FRZ")

			err := c.Transfer(db, tc.auth, tc.src, bob.Address(), tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}

			got, err := c.Balance(db, alice.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = c.Balance(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestControllerAccounts(t *testing.T) {
	db := store.MemStore()
	createTokens(t, db)
	c := NewController()

	authority, _, err := weave.FindDerivedCondition("test", []byte("account"))
	assert.Nil(t, err)
	alice := weavetest.NewCondition()
	assert.Nil(t, c.Mint(db, alice.Address(), coin.NewCoin(100, "IOV")))

	account, err := c.OpenAccount(db, authority.Address(), "IOV")
	assert.Nil(t, err)
	assert.Equal(t, AccountAddress(authority.Address(), "IOV"), account)

	_, err = c.OpenAccount(db, authority.Address(), "IOV")
	assert.IsErr(t, errors.ErrDuplicate, err)
	_, err = c.OpenAccount(db, authority.Address(), "XYZ")
	assert.IsErr(t, errors.ErrCurrency, err)

	// An open account is empty.
	balance, err := c.Balance(db, account)
	assert.Nil(t, err)
	assert.Equal(t, true, balance.IsEmpty())

	// Anyone can deposit, only the owner can withdraw.
	assert.Nil(t, c.Transfer(db, alice, alice.Address(), account, coin.NewCoin(40, "IOV")))
	err = c.Transfer(db, alice, account, alice.Address(), coin.NewCoin(1, "IOV"))
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Nil(t, c.Transfer(db, authority, account, alice.Address(), coin.NewCoin(10, "IOV")))

	// The account holds only its own token.
	assert.Nil(t, c.Mint(db, alice.Address(), coin.NewCoin(5, "ETH")))
	err = c.Transfer(db, alice, alice.Address(), account, coin.NewCoin(5, "ETH"))
	assert.IsErr(t, errors.ErrCurrency, err)
	err = c.Mint(db, account, coin.NewCoin(5, "ETH"))
	assert.IsErr(t, errors.ErrCurrency, err)
	balance, err = c.Balance(db, alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(5, "ETH"), coin.NewCoinp(70, "IOV")}, balance)

	err = c.CloseAccount(db, alice, account, alice.Address())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Closing returns the leftovers.
	assert.Nil(t, c.CloseAccount(db, authority, account, alice.Address()))
	balance, err = c.Balance(db, alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(5, "ETH"), coin.NewCoinp(100, "IOV")}, balance)

	err = c.CloseAccount(db, authority, account, alice.Address())
	assert.IsErr(t, errors.ErrNotFound, err)
	balance, err = c.Balance(db, account)
	assert.Nil(t, err)
	assert.Equal(t, true, balance.IsEmpty())

	// The account can be opened again once closed.
	_, err = c.OpenAccount(db, authority.Address(), "IOV")
	assert.Nil(t, err)
}

func TestControllerAccountPrefunded(t *testing.T) {
	db := store.MemStore()
	createTokens(t, db)
	c := NewController()

	authority, _, err := weave.FindDerivedCondition("test", []byte("prefunded"))
	assert.Nil(t, err)
	alice := weavetest.NewCondition()
	assert.Nil(t, c.Mint(db, alice.Address(), coin.NewCoin(100, "IOV")))
	assert.Nil(t, c.Mint(db, alice.Address(), coin.NewCoin(100, "ETH")))

	// Funds can reach the account address before it is opened.
	account := AccountAddress(authority.Address(), "IOV")
	assert.Nil(t, c.Transfer(db, alice, alice.Address(), account, coin.NewCoin(3, "IOV")))
	assert.Nil(t, c.Transfer(db, alice, alice.Address(), account, coin.NewCoin(2, "ETH")))

	got, err := c.OpenAccount(db, authority.Address(), "IOV")
	assert.Nil(t, err)
	assert.Equal(t, account, got)
	err = c.Transfer(db, alice, alice.Address(), account, coin.NewCoin(1, "ETH"))
	assert.IsErr(t, errors.ErrCurrency, err)
	assert.Nil(t, c.Transfer(db, alice, alice.Address(), account, coin.NewCoin(10, "IOV")))

	// Only the account token is released. The rest stays behind in a wallet
	// nobody controls.
	assert.Nil(t, c.CloseAccount(db, authority, account, alice.Address()))
	balance, err := c.Balance(db, alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(98, "ETH"), coin.NewCoinp(100, "IOV")}, balance)
	balance, err = c.Balance(db, account)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(2, "ETH")}, balance)
	err = c.Transfer(db, authority, account, alice.Address(), coin.NewCoin(2, "ETH"))
	assert.IsErr(t, errors.ErrUnauthorized, err)
	err = c.CloseAccount(db, authority, account, alice.Address())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// The same account can be opened again.
	_, err = c.OpenAccount(db, authority.Address(), "IOV")
	assert.Nil(t, err)
	_, err = c.OpenAccount(db, authority.Address(), "IOV")
	assert.IsErr(t, errors.ErrDuplicate, err)

	// A wallet controlled by a key cannot be taken over.
	bob := weavetest.NewCondition()
	w := &Wallet{Owner: alice.Address(), Coins: coin.Coins{coin.NewCoinp(1, "IOV")}}
	assert.Nil(t, c.wallets.Put(db, AccountAddress(bob.Address(), "ETH"), w))
	_, err = c.OpenAccount(db, bob.Address(), "ETH")
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestAccountAddress(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	assert.Equal(t, AccountAddress(a, "IOV"), AccountAddress(a, "IOV"))
	if AccountAddress(a, "IOV").Equals(AccountAddress(a, "ETH")) {
		t.Fatal("ticker must change the address")
	}
	if AccountAddress(a, "IOV").Equals(AccountAddress(b, "IOV")) {
		t.Fatal("owner must change the address")
	}
	if AccountAddress(a, "IOV").Equals(a) {
		t.Fatal("account must not be owned by the owner key")
	}
	if AccountAddress(weave.Address("ab"), "CDE").Equals(AccountAddress(weave.Address("abC"), "DE")) {
		t.Fatal("owner and ticker boundary must change the address")
	}
}

func createTokens(t testing.TB, db weave.KVStore) {
	t.Helper()
	tokens := currency.NewTokenInfoBucket()
	for _, obj := range []struct {
		ticker, hook string
	}{
		{"IOV", ""},
		{"ETH", ""},
		{"BTC", ""},
		{"FRZ", ""},
		{"WLT", "gated"},
		{"NOG", "nogate"},
	} {
		if err := tokens.Save(db, currency.NewTokenInfo(obj.ticker, obj.ticker+" token", obj.hook)); err != nil {
			t.Fatalf("cannot create %s token: %s", obj.ticker, err)
		}
	}
}

func freeze(t testing.TB, db weave.KVStore, ticker string) {
	t.Helper()
	tokens := currency.NewTokenInfoBucket()
	obj, err := tokens.Get(db, ticker)
	if err != nil || obj == nil {
		t.Fatalf("cannot load %s token: %v", ticker, err)
	}
	obj.Value().(*currency.TokenInfo).Frozen = true
	if err := tokens.Save(db, obj); err != nil {
		t.Fatalf("cannot freeze %s token: %s", ticker, err)
	}
}
