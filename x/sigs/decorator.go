/*
Package sigs verifies ed25519 signatures attached to a transaction and keeps
a sequence per signer, so that a signed transaction cannot be replayed.
*/
package sigs

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

const signatureVerifyCost = 500

// RegisterQuery exposes signer data under "/auth".
func RegisterQuery(qr weave.QueryRouter) {
	NewAccountBucket().Register("auth", qr)
}

// Decorator verifies the transaction signatures and passes the signers down
// the stack. Use Authenticate to read them.
type Decorator struct {
	allowMissingSigs bool
}

var _ weave.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects unsigned transactions.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy of the decorator that lets unsigned
// transactions through with no signers.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns a context carrying the verified signers and their
// count. Transactions that cannot carry signatures pass unchanged.
func (d Decorator) authenticate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, weave.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
