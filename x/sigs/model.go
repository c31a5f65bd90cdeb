package sigs

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/crypto"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/orm"
)

// BucketName prefixes every signer account in the store.
const BucketName = "sigs"

// Clients encode the sequence as a JavaScript number, so it must stay
// within Number.MAX_SAFE_INTEGER.
const maxSequence = 1<<53 - 1

// Account is the replay protection state of a single signer.
type Account struct {
	Pubkey   *crypto.PublicKey
	Sequence int64
}

var _ orm.CloneableData = (*Account)(nil)

func (a *Account) Validate() error {
	switch {
	case a.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case a.Sequence > maxSequence:
		return errors.Wrap(ErrInvalidSequence, "too big")
	case a.Sequence > 0 && a.Pubkey == nil:
		return errors.Wrap(ErrInvalidSequence, "used without a public key")
	}
	return nil
}

func (a *Account) Copy() orm.CloneableData {
	cpy := *a
	return &cpy
}

func (a *Account) Marshal() ([]byte, error) { return codec.Marshal(a) }

func (a *Account) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, a) }

// Use consumes seq, which must be the current sequence of the account.
func (a *Account) Use(seq int64) error {
	if a.Sequence != seq {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", a.Sequence, seq)
	}
	if a.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence")
	}
	a.Sequence++
	return nil
}

// AccountBucket stores accounts under the address of their public key.
type AccountBucket struct {
	orm.Bucket
}

func NewAccountBucket() AccountBucket {
	proto := orm.NewSimpleObj(nil, &Account{})
	return AccountBucket{Bucket: orm.NewBucket(BucketName, proto)}
}

// Find returns the account of the signer, or nil when it never signed.
func (b AccountBucket) Find(db weave.ReadOnlyKVStore, signer weave.Address) (*Account, error) {
	obj, err := b.Get(db, signer)
	if err != nil {
		return nil, errors.Wrap(err, "load account")
	}
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	acc, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "%T", obj.Value())
	}
	return acc, nil
}

// Load returns the account bound to the public key, creating a fresh one
// for a first time signer. A new account is not stored until Put.
func (b AccountBucket) Load(db weave.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*Account, error) {
	acc, err := b.Find(db, pubkey.Address())
	if err != nil || acc != nil {
		return acc, err
	}
	return &Account{Pubkey: pubkey}, nil
}

func (b AccountBucket) Put(db weave.KVStore, acc *Account) error {
	if acc.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	return b.Save(db, orm.NewSimpleObj(acc.Pubkey.Address(), acc))
}
