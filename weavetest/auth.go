package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/weaveswap"
)

// Auth is an x.Authenticator that considers every listed condition signed.
// Signer and Signers are merged, Signer is a shortcut for the common single
// party case.
type Auth struct {
	Signer  weave.Condition
	Signers []weave.Condition
}

func (a *Auth) conditions() []weave.Condition {
	conds := make([]weave.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) GetConditions(weave.Context) []weave.Condition {
	return a.conditions()
}

func (a *Auth) HasAddress(_ weave.Context, addr weave.Address) bool {
	return hasAddress(a.conditions(), addr)
}

// CtxAuth is an x.Authenticator that reads signers from the context. Use
// SetConditions to attach signers before calling a handler.
type CtxAuth struct {
	// Key under which conditions are kept in the context.
	Key string
}

// SetConditions returns a context that authenticates given conditions.
func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []weave.Condition:
		return v
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []weave.Condition, addr weave.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
