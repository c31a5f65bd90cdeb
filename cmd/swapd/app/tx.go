package app

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/crypto"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/x/sigs"
)

// Tx is the transaction envelope of the application: a single message and
// the signatures authorizing it.
type Tx struct {
	Msg        weave.Msg            `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the message carried by this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "unable to decode")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// sign bytes come only from the data itself, not previous signatures
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	return codec.Marshal(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, tx)
}

// SignTx wraps given message into a transaction signed by all signers, each
// using the sequence found at the same position.
func SignTx(msg weave.Msg, chainID string, signers []crypto.Signer, seqs []int64) (*Tx, error) {
	if len(signers) != len(seqs) {
		return nil, errors.Wrap(errors.ErrInput, "a sequence is required for each signer")
	}
	tx := &Tx{Msg: msg}
	for i, s := range signers {
		sig, err := sigs.SignTx(s, tx, chainID, seqs[i])
		if err != nil {
			return nil, errors.Wrap(err, "sign")
		}
		tx.Signatures = append(tx.Signatures, sig)
	}
	return tx, nil
}
