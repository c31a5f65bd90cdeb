package sigs

import (
	"github.com/iov-one/weaveswap/errors"
)

// x/sigs reserves 120 ~ 129.
var (
	// ErrInvalidSequence is returned when a signature sequence does not
	// match the signer nonce.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
