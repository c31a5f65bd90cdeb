package currency

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/orm"
	"github.com/iov-one/weaveswap/x"
)

const (
	newTokenInfoCost = 100
	freezeTokenCost  = 10
)

func RegisterQuery(qr weave.QueryRouter) {
	NewTokenInfoBucket().Register("tokens", qr)
}

// RegisterRoutes registers token management handlers. When issuer is not
// nil, only that address can create or freeze tokens.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, issuer weave.Address) {
	r.Handle(&CreateMsg{}, NewCreateTokenInfoHandler(auth, issuer))
	r.Handle(&FreezeMsg{}, NewFreezeTokenHandler(auth, issuer))
}

func NewCreateTokenInfoHandler(auth x.Authenticator, issuer weave.Address) weave.Handler {
	return &createTokenInfoHandler{
		auth:   auth,
		issuer: issuer,
		bucket: NewTokenInfoBucket(),
	}
}

type createTokenInfoHandler struct {
	auth   x.Authenticator
	bucket *TokenInfoBucket
	issuer weave.Address
}

func (h *createTokenInfoHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: newTokenInfoCost}, nil
}

func (h *createTokenInfoHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := NewTokenInfo(msg.Ticker, msg.Name, msg.Hook)
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: []byte(msg.Ticker)}, nil
}

func (h *createTokenInfoHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Ensure we have permission if the issuer is provided.
	if h.issuer != nil && !h.auth.HasAddress(ctx, h.issuer) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "token only issued by %s", h.issuer)
	}

	// Token can be registered only once and must not be updated.
	switch obj, err := h.bucket.Get(db, msg.Ticker); {
	case err != nil:
		return nil, err
	case obj != nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "ticker %s", msg.Ticker)
	}

	return &msg, nil
}

func NewFreezeTokenHandler(auth x.Authenticator, issuer weave.Address) weave.Handler {
	return &freezeTokenHandler{
		auth:   auth,
		issuer: issuer,
		bucket: NewTokenInfoBucket(),
	}
}

type freezeTokenHandler struct {
	auth   x.Authenticator
	bucket *TokenInfoBucket
	issuer weave.Address
}

func (h *freezeTokenHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: freezeTokenCost}, nil
}

func (h *freezeTokenHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, info, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	info.Frozen = msg.Frozen
	obj := orm.NewSimpleObj([]byte(msg.Ticker), info)
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("token frozen state changed", "ticker", msg.Ticker, "frozen", msg.Frozen)
	return &weave.DeliverResult{}, nil
}

func (h *freezeTokenHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*FreezeMsg, *TokenInfo, error) {
	var msg FreezeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if h.issuer != nil && !h.auth.HasAddress(ctx, h.issuer) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "token only managed by %s", h.issuer)
	}
	info, err := h.bucket.Token(db, msg.Ticker)
	if err != nil {
		return nil, nil, err
	}
	return &msg, info, nil
}
