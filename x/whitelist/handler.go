package whitelist

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/gconf"
	"github.com/iov-one/weaveswap/orm"
	"github.com/iov-one/weaveswap/x"
)

const (
	addCost    = 50
	switchCost = 10
)

// RegisterRoutes registers handlers for whitelist management.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(&AddMsg{}, &addHandler{auth: auth, bucket: bucket})
	r.Handle(&SwitchMsg{}, &switchHandler{auth: auth, bucket: bucket})
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// RegisterQuery will register this bucket as "/whitelist"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("whitelist", qr)
}

// NewConfigHandler returns a handler that allows the administrator to hand
// over the whitelist.
func NewConfigHandler(auth x.Authenticator) weave.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth)
}

type addHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ weave.Handler = (*addHandler)(nil)

func (h *addHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: addCost}, nil
}

func (h *addHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, admin, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	entry := Entry{Whitelisted: true, AddedBy: admin}
	if err := h.bucket.Put(db, msg.Owner, &entry); err != nil {
		return nil, errors.Wrap(err, "cannot store entry")
	}
	weave.GetLogger(ctx).Info("owner whitelisted", "owner", msg.Owner)
	return &weave.DeliverResult{}, nil
}

func (h *addHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*AddMsg, weave.Address, error) {
	var msg AddMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	admin, err := requireAdmin(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	switch err := h.bucket.Has(db, msg.Owner); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "owner %s", msg.Owner)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	return &msg, admin, nil
}

type switchHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ weave.Handler = (*switchHandler)(nil)

func (h *switchHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: switchCost}, nil
}

func (h *switchHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, entry, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	entry.Whitelisted = !entry.Whitelisted
	if err := h.bucket.Put(db, msg.Owner, entry); err != nil {
		return nil, errors.Wrap(err, "cannot store entry")
	}
	weave.GetLogger(ctx).Info("whitelist switched", "owner", msg.Owner, "whitelisted", entry.Whitelisted)
	return &weave.DeliverResult{}, nil
}

func (h *switchHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*SwitchMsg, *Entry, error) {
	var msg SwitchMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := requireAdmin(ctx, db, h.auth); err != nil {
		return nil, nil, err
	}
	var entry Entry
	if err := h.bucket.One(db, msg.Owner, &entry); err != nil {
		return nil, nil, errors.Wrapf(err, "owner %s", msg.Owner)
	}
	return &msg, &entry, nil
}

// requireAdmin returns the administrator address if it signed the
// transaction.
func requireAdmin(ctx weave.Context, db weave.ReadOnlyKVStore, auth x.Authenticator) (weave.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !auth.HasAddress(ctx, conf.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "whitelist admin signature required")
	}
	return conf.Admin, nil
}
