package currency

import (
	"regexp"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/coin"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/orm"
)

var (
	isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString
	isHookName  = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString
)

// TokenInfo describes a registered currency. Hook names the transfer gate
// that must approve every movement of this token. Frozen tokens cannot be
// transferred at all.
type TokenInfo struct {
	Name   string `json:"name"`
	Hook   string `json:"hook,omitempty"`
	Frozen bool   `json:"frozen,omitempty"`
}

var _ orm.CloneableData = (*TokenInfo)(nil)

// NewTokenInfo returns a new instance of Token Info, as represented by orm
// object.
func NewTokenInfo(ticker, name, hook string) orm.Object {
	return orm.NewSimpleObj([]byte(ticker), &TokenInfo{
		Name: name,
		Hook: hook,
	})
}

func (t *TokenInfo) Validate() error {
	if !isTokenName(t.Name) {
		return errors.Wrapf(errors.ErrModel, "invalid token name %q", t.Name)
	}
	if t.Hook != "" && !isHookName(t.Hook) {
		return errors.Wrapf(errors.ErrModel, "invalid hook name %q", t.Hook)
	}
	return nil
}

func (t *TokenInfo) Copy() orm.CloneableData {
	return &TokenInfo{
		Name:   t.Name,
		Hook:   t.Hook,
		Frozen: t.Frozen,
	}
}

func (t *TokenInfo) Marshal() ([]byte, error) {
	return codec.Marshal(t)
}

func (t *TokenInfo) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, t)
}

// TokenInfoBucket stores TokenInfo instances, using ticker name (currency
// symbol) as the key.
type TokenInfoBucket struct {
	orm.Bucket
}

func NewTokenInfoBucket() *TokenInfoBucket {
	return &TokenInfoBucket{
		Bucket: orm.NewBucket("tokeninfo", orm.NewSimpleObj(nil, &TokenInfo{})),
	}
}

// Get returns the token object stored under given ticker or nil.
func (b *TokenInfoBucket) Get(db weave.ReadOnlyKVStore, ticker string) (orm.Object, error) {
	return b.Bucket.Get(db, []byte(ticker))
}

func (b *TokenInfoBucket) Save(db weave.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*TokenInfo); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	if n := string(obj.Key()); !coin.IsCC(n) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", n)
	}
	return b.Bucket.Save(db, obj)
}

// Token returns the information about given ticker. ErrCurrency is returned
// if the ticker was never registered.
func (b *TokenInfoBucket) Token(db weave.ReadOnlyKVStore, ticker string) (*TokenInfo, error) {
	obj, err := b.Get(db, ticker)
	if err != nil {
		return nil, err
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrapf(errors.ErrCurrency, "unknown token %q", ticker)
	}
	return obj.Value().(*TokenInfo), nil
}
