/*
Package cash implements wallets holding coins and the controller that moves
value between them.

Every wallet has an owner. A regular wallet is owned by the address it is
stored under, so the key that produced that address controls it. An account
opened with OpenAccount lives under an address derived from the owner and the
ticker, which means no key exists for it and only the owner may move funds
out of it. An account holds a single token and rejects credits of any other.
This is how other extensions take custody of funds.

Before any balance changes, the controller consults the token registry: a
frozen token cannot move, and a token that names a hook must be approved by
the transfer gate registered under that name.
*/
package cash
