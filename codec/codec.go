/*
Package codec provides the binary serialization shared by all models,
messages and transactions.

Every persisted entity implements weave.Persistent by delegating to Marshal
and Unmarshal from this package. Messages must additionally be registered with
RegisterMsg so that they can travel inside a transaction as weave.Msg
interface values.
*/
package codec

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
	amino "github.com/tendermint/go-amino"
)

// Amino is the codec instance used by the application. Register all concrete
// message types during the package initialization phase.
var Amino = amino.NewCodec()

func init() {
	Amino.RegisterInterface((*weave.Msg)(nil), nil)
}

// RegisterMsg registers a concrete message implementation under given name.
// Name must be unique across the application.
func RegisterMsg(msg weave.Msg, name string) {
	Amino.RegisterConcrete(msg, name, nil)
}

// Marshal serializes given object into its binary representation.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := Amino.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", o, err)
	}
	return bz, nil
}

// Unmarshal loads binary representation into given pointer.
func Unmarshal(bz []byte, ptr interface{}) error {
	if err := Amino.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", ptr, err)
	}
	return nil
}

// MarshalJSON serializes given object into JSON, using registered names for
// interface values.
func MarshalJSON(o interface{}) ([]byte, error) {
	bz, err := Amino.MarshalJSON(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal json %T: %s", o, err)
	}
	return bz, nil
}
