// Package bech32 encodes addresses in the human readable bech32 format,
// for example "swap1..." for addresses displayed by the command line.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/weaveswap/errors"
)

// Encode returns the bech32 representation of payload using given human
// readable part.
func Encode(hrp string, payload []byte) ([]byte, error) {
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	enc, err := bech32.Encode(hrp, data)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "encode: %s", err)
	}
	return []byte(enc), nil
}

// Decode returns the human readable part and the payload of a bech32
// string. Malformed input is an ErrInput error.
func Decode(enc string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(enc)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "decode: %s", err)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	return hrp, payload, nil
}
