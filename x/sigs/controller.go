package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/crypto"
	"github.com/iov-one/weaveswap/errors"
)

// SignCodeV1 prefixes every signed payload. Changing the payload layout
// requires a new code.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of the transaction and
// increments the sequence of each signer. It returns the conditions of all
// signers, in the order the signatures were attached.
func VerifyTxSignatures(db weave.KVStore, tx SignedTx, chainID string) ([]weave.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]weave.Condition, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks a single signature of given payload. On success
// the signer sequence is incremented and stored.
func VerifySignature(db weave.KVStore, sig *StdSignature, payload []byte, chainID string) (weave.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	accounts := NewAccountBucket()
	acc, err := accounts.Load(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	signed, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !acc.Pubkey.Verify(signed, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := acc.Use(sig.Sequence); err != nil {
		return nil, err
	}
	if err := accounts.Put(db, acc); err != nil {
		return nil, err
	}
	return acc.Pubkey.Condition(), nil
}

/*
BuildSignBytes returns the digest a signer signs for given payload:

  sha512(SignCodeV1 | len(chainID) uint8 | chainID | sequence int64 big endian | payload)

Binding the chain id and the sequence into the digest makes a signature
useless on any other chain and for any other transaction of the signer.
*/
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !weave.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	raw := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(payload))
	raw = append(raw, SignCodeV1...)
	raw = append(raw, uint8(len(chainID)))
	raw = append(raw, chainID...)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	raw = append(raw, nonce[:]...)
	raw = append(raw, payload...)

	digest := sha512.Sum512(raw)
	return digest[:], nil
}

// BuildSignBytesTx returns the digest for the sign bytes of given
// transaction.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(payload, chainID, seq)
}

// SignTx signs the transaction as signer using given sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// NextNonce returns the sequence the next signature of given signer must
// carry. Signers that never signed start at zero.
func NextNonce(db weave.ReadOnlyKVStore, signer weave.Address) (int64, error) {
	acc, err := NewAccountBucket().Find(db, signer)
	if err != nil || acc == nil {
		return 0, err
	}
	return acc.Sequence, nil
}
