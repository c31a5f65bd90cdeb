package gconf

import (
	"reflect"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/x"
)

// OwnedConfig is a configuration that can be changed only with a
// transaction signed by its owner.
type OwnedConfig interface {
	Configuration
	GetOwner() weave.Address
}

// UpdateConfigurationHandler patches the configuration of a package with
// the "Patch" field of a message. Zero value fields of the patch keep the
// current value.
type UpdateConfigurationHandler struct {
	pkg    string
	config OwnedConfig
	auth   x.Authenticator
}

var _ weave.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a handler updating the configuration
// of pkg. config is only used as a prototype to load the current state, which
// must have been created at genesis.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("Configuration updated", "pkg", h.pkg)
	return &weave.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) apply(ctx weave.Context, db weave.KVStore, tx weave.Tx) error {
	if err := Load(db, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "load current configuration")
	}
	owner := h.config.GetOwner()
	if owner == nil {
		return errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}
	p, err := patchOf(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(h.config, p); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(db, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

// patch copies every non zero field of p into config. Both must point to a
// struct of the same type.
func patch(config, p OwnedConfig) error {
	if reflect.TypeOf(config) != reflect.TypeOf(p) {
		return errors.Wrapf(errors.ErrMsg, "cannot patch %T with %T", config, p)
	}
	dst := reflect.ValueOf(config).Elem()
	src := reflect.ValueOf(p).Elem()
	for i := 0; i < dst.NumField(); i++ {
		f := src.Field(i)
		if reflect.DeepEqual(f.Interface(), reflect.Zero(f.Type()).Interface()) {
			continue
		}
		dst.Field(i).Set(f)
	}
	return nil
}

// patchOf returns the value of the "Patch" field of the transaction message.
// The message is validated first.
func patchOf(tx weave.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := v.Elem().FieldByName("Patch")
	switch {
	case !field.IsValid() || field.Kind() != reflect.Ptr:
		return nil, errors.Wrapf(errors.ErrInput, `"Patch" field missing in %T`, msg)
	case field.IsNil():
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	p, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, `"Patch" field of %T is not a configuration`, msg)
	}
	return p, nil
}
