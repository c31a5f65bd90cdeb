package sigs

import (
	"github.com/iov-one/weaveswap/crypto"
	"github.com/iov-one/weaveswap/errors"
)

// SignedTx is a transaction carrying signatures verified by the Decorator.
type SignedTx interface {
	// GetSignBytes returns the deterministic payload that is signed,
	// excluding the signatures themselves.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns all signatures attached to the transaction.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature of the transaction sign bytes together with
// the public key and the signer sequence used to build them.
type StdSignature struct {
	Sequence  int64             `json:"sequence"`
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature *crypto.Signature `json:"signature"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
