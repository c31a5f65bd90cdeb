package escrow

import (
	"math"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/gconf"
	"github.com/iov-one/weaveswap/orm"
	"github.com/iov-one/weaveswap/x"
)

const (
	makeEscrowCost   int64 = 300
	takeEscrowCost   int64 = 100
	refundEscrowCost int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, gateway Gateway) {
	bucket := NewBucket()

	r.Handle(&MakeMsg{}, MakeEscrowHandler{auth: auth, bucket: bucket, gateway: gateway})
	r.Handle(&TakeMsg{}, TakeEscrowHandler{auth: auth, bucket: bucket, gateway: gateway})
	r.Handle(&RefundMsg{}, RefundEscrowHandler{auth: auth, bucket: bucket, gateway: gateway})
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// NewConfigHandler returns a handler that updates the escrow configuration.
func NewConfigHandler(auth x.Authenticator) weave.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth)
}

// MakeEscrowHandler opens an escrow and moves the deposit into its custody
// account.
type MakeEscrowHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	gateway Gateway
}

var _ weave.Handler = MakeEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h MakeEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: makeEscrowCost}, nil
}

// Deliver stores the escrow and deposits the maker funds if all
// preconditions are met.
func (h MakeEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, maker, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	authority, bump, err := DeriveAuthority(msg.Maker, msg.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "cannot derive authority")
	}
	key := authority.Address()
	switch err := h.bucket.Has(db, key); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow with seed %d", msg.Seed)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	custody, err := h.gateway.OpenAccount(db, key, msg.MintA)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open custody account")
	}

	var expiry weave.UnixTime
	if msg.ExpiresIn > 0 {
		now, err := blockTime(ctx)
		if err != nil {
			return nil, err
		}
		if int64(now) > math.MaxInt64-msg.ExpiresIn {
			return nil, errors.Wrap(errors.ErrOverflow, "expiration time")
		}
		expiry = now + weave.UnixTime(msg.ExpiresIn)
	}

	escrow := &Escrow{
		Maker:         msg.Maker,
		Seed:          msg.Seed,
		MintA:         msg.MintA,
		MintB:         msg.MintB,
		ReceiveAmount: msg.ReceiveAmount,
		Expiry:        expiry,
		Bump:          uint32(bump),
		Custody:       custody,
	}
	if err := h.bucket.Put(db, key, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	deposit := coin.NewCoin(msg.DepositAmount, msg.MintA)
	if err := h.gateway.Transfer(db, maker, msg.Maker, custody, deposit); err != nil {
		return nil, errors.Wrap(err, "cannot deposit")
	}

	weave.GetLogger(ctx).Info("escrow made",
		"escrow", weave.Address(key), "maker", msg.Maker, "deposit", deposit)
	return &weave.DeliverResult{Data: key}, nil
}

// validate does all common pre-processing between Check and Deliver. It
// returns the condition of the maker.
func (h MakeEscrowHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*MakeMsg, weave.Condition, error) {
	var msg MakeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	maker := x.SignerCondition(ctx, h.auth, msg.Maker)
	if maker == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature required")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if conf.MaxExpiresIn > 0 && msg.ExpiresIn > conf.MaxExpiresIn {
		return nil, nil, errors.Wrapf(errors.ErrInput, "expiration offset above %d seconds", conf.MaxExpiresIn)
	}
	return &msg, maker, nil
}

// TakeEscrowHandler pays the maker and releases the deposit to the taker.
type TakeEscrowHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	gateway Gateway
}

var _ weave.Handler = TakeEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h TakeEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: takeEscrowCost}, nil
}

// Deliver settles the escrow. Both transfers happen or none.
func (h TakeEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, taker, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	payment := coin.NewCoin(escrow.ReceiveAmount, escrow.MintB)
	if err := h.gateway.Transfer(db, taker, msg.Taker, escrow.Maker, payment); err != nil {
		return nil, errors.Wrap(err, "cannot pay the maker")
	}

	authority, err := Authority(msg.EscrowID, escrow)
	if err != nil {
		return nil, err
	}
	released, err := release(db, h.gateway, authority, escrow, msg.Taker)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}

	weave.GetLogger(ctx).Info("escrow taken",
		"escrow", weave.Address(msg.EscrowID), "taker", msg.Taker, "released", released)
	return &weave.DeliverResult{Data: msg.EscrowID}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h TakeEscrowHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TakeMsg, weave.Condition, *Escrow, error) {
	var msg TakeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}

	taker := x.SignerCondition(ctx, h.auth, msg.Taker)
	if taker == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature required")
	}

	var escrow Escrow
	if err := h.bucket.One(db, msg.EscrowID, &escrow); err != nil {
		return nil, nil, nil, errors.Wrap(err, "cannot load escrow from the store")
	}

	if escrow.Expiry != 0 && weave.IsExpired(ctx, escrow.Expiry) {
		return nil, nil, nil, errors.Wrapf(errors.ErrExpired, "escrow expired %v", escrow.Expiry)
	}
	return &msg, taker, &escrow, nil
}

// RefundEscrowHandler cancels an escrow and returns the deposit to the maker.
type RefundEscrowHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	gateway Gateway
}

var _ weave.Handler = RefundEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h RefundEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: refundEscrowCost}, nil
}

// Deliver returns the whole custody balance to the maker. There is no
// expiration check, the maker can cancel at any time.
func (h RefundEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	authority, err := Authority(msg.EscrowID, escrow)
	if err != nil {
		return nil, err
	}
	released, err := release(db, h.gateway, authority, escrow, escrow.Maker)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}

	weave.GetLogger(ctx).Info("escrow refunded",
		"escrow", weave.Address(msg.EscrowID), "maker", escrow.Maker, "released", released)
	return &weave.DeliverResult{Data: msg.EscrowID}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h RefundEscrowHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*RefundMsg, *Escrow, error) {
	var msg RefundMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	var escrow Escrow
	if err := h.bucket.One(db, msg.EscrowID, &escrow); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load escrow from the store")
	}

	if !h.auth.HasAddress(ctx, escrow.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature required")
	}
	return &msg, &escrow, nil
}

// release moves the whole custody balance to the recipient, authorized by
// the escrow authority, and closes the custody account.
func release(db weave.KVStore, gateway Gateway, authority weave.Condition, escrow *Escrow, recipient weave.Address) (coin.Coin, error) {
	balance, err := gateway.Balance(db, escrow.Custody)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "custody balance")
	}
	deposit := balance.Balance(escrow.MintA)
	if !deposit.IsZero() {
		if err := gateway.Transfer(db, authority, escrow.Custody, recipient, deposit); err != nil {
			return coin.Coin{}, errors.Wrap(err, "cannot release deposit")
		}
	}
	if err := gateway.CloseAccount(db, authority, escrow.Custody, recipient); err != nil {
		return coin.Coin{}, errors.Wrap(err, "cannot close custody account")
	}
	return deposit, nil
}

func blockTime(ctx weave.Context) (weave.UnixTime, error) {
	now, ok := weave.BlockTime(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrState, "block time not present in context")
	}
	return weave.AsUnixTime(now), nil
}
