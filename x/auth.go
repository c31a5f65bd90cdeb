package x

import (
	"github.com/iov-one/weaveswap"
)

// Authenticator tells which conditions authorized the current transaction.
// Handlers receive it in their constructor, so that tests can replace
// signature verification with a mock.
type Authenticator interface {
	// GetConditions returns all conditions that authorized the
	// transaction.
	GetConditions(weave.Context) []weave.Condition
	// HasAddress returns true if any of the conditions maps to given
	// address.
	HasAddress(weave.Context, weave.Address) bool
}

// SignerCondition returns the condition of the signer with given address, or
// nil if that address did not sign.
func SignerCondition(ctx weave.Context, auth Authenticator, addr weave.Address) weave.Condition {
	for _, c := range auth.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return c
		}
	}
	return nil
}
