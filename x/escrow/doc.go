/*
Package escrow implements a trustless exchange of two tokens.

A maker locks a deposit of one token in a custody account and names the
token and amount it wants in return. A taker satisfies that condition by
paying the maker and receives the whole deposit in the same transaction. The
maker can cancel the escrow at any time and get the deposit back.

No key controls the custody account. It is owned by an authority derived from
the maker address and a seed chosen by the maker, and the bump that proves
the derivation is stored with the escrow. Only this extension can recreate
the authority and move the deposit.
*/
package escrow
