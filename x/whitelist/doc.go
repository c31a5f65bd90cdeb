/*
Package whitelist implements a transfer gate that only lets whitelisted
owners move tokens.

An administrator, declared in the package configuration, adds owners to the
whitelist and can switch an entry on and off. Tokens that want to be gated
name the "whitelist" hook in their token info and the cash controller asks
the Gate for approval before moving them.
*/
package whitelist
