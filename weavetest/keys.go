package weavetest

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/crypto"
)

// NewKey returns a new random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a condition of a new random signer.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}
