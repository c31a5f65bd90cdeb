package weave

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"filippo.io/edwards25519"
	"github.com/iov-one/weaveswap/crypto/bech32"
	"github.com/iov-one/weaveswap/errors"
)

// AddressLength is the size of every address. It must not change once a
// store holds addresses.
var AddressLength = 20

// (?s) lets the data section contain a newline byte.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition names who may authorize an action. It is the extension, the
// type and the data joined with a slash, for example
//
//   sigs/ed25519/<public key>
//   escrow/derived/<digest>
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits the condition into its extension, type and data.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

// Address returns the address controlled by this condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(other Condition) bool {
	return bytes.Equal(c, other)
}

// String keeps the extension and the type readable and hex encodes the data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) Validate() error {
	if !conditionFormat.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return nil
}

// MarshalJSON uses the String form. A nil condition becomes an empty string.
func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return c.parseString(s)
}

// parseString is the inverse of String.
func (c *Condition) parseString(s string) error {
	if s == "" {
		*c = nil
		return nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return errors.Wrapf(errors.ErrInput, "condition %q", s)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	*c = NewCondition(parts[0], parts[1], data)
	return nil
}

const (
	// derivedType is the condition type of every condition created by
	// CreateDerivedCondition.
	derivedType = "derived"

	// MaxDerivationSeeds is the maximum number of seeds accepted when
	// deriving a condition.
	MaxDerivationSeeds = 16
	// MaxDerivationSeedLength is the maximum length of a single seed.
	MaxDerivationSeedLength = 32
)

var derivedMarker = []byte("DerivedCondition")

// CreateDerivedCondition deterministically computes a condition from the
// extension name, the bump and the seeds. The resulting condition data is a
// 32 byte digest that is guaranteed not to be a valid ed25519 public key, so
// no private key can ever sign for it. Only the extension code that knows the
// seeds can claim to act as this condition.
//
// ErrState is returned when the digest for given bump falls onto the curve.
// Use FindDerivedCondition to search for a usable bump.
func CreateDerivedCondition(ext string, bump uint8, seeds ...[]byte) (Condition, error) {
	if len(seeds) > MaxDerivationSeeds {
		return nil, errors.Wrapf(errors.ErrInput, "at most %d seeds allowed", MaxDerivationSeeds)
	}
	h := sha256.New()
	for i, s := range seeds {
		if len(s) > MaxDerivationSeedLength {
			return nil, errors.Wrapf(errors.ErrInput, "seed %d longer than %d bytes", i, MaxDerivationSeedLength)
		}
		_, _ = h.Write(s)
	}
	_, _ = h.Write([]byte{bump})
	_, _ = h.Write([]byte(ext))
	_, _ = h.Write(derivedMarker)
	digest := h.Sum(nil)

	if isOnCurve(digest) {
		return nil, errors.Wrapf(errors.ErrState, "bump %d derives an on curve point", bump)
	}
	c := NewCondition(ext, derivedType, digest)
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "extension name")
	}
	return c, nil
}

// FindDerivedCondition searches for the highest bump value that produces a
// valid derived condition for given extension and seeds. The bump must be
// kept, as it is the proof required to recreate the condition with
// CreateDerivedCondition.
func FindDerivedCondition(ext string, seeds ...[]byte) (Condition, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		c, err := CreateDerivedCondition(ext, uint8(bump), seeds...)
		switch {
		case err == nil:
			return c, uint8(bump), nil
		case errors.ErrState.Is(err):
			continue
		default:
			return nil, 0, err
		}
	}
	return nil, 0, errors.Wrap(errors.ErrState, "no viable bump")
}

// IsDerived returns true if this condition was created by
// CreateDerivedCondition for given extension.
func (c Condition) IsDerived(ext string) bool {
	e, typ, data, err := c.Parse()
	return err == nil && e == ext && typ == derivedType && len(data) == sha256.Size
}

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// Address is the truncated sha256 digest of a Condition. Funds are always
// held by an address.
type Address []byte

func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// MarshalJSON encodes the address as upper case hex.
func (a Address) MarshalJSON() ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(a))
	return json.Marshal(s)
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes a human readable address. The default format is hex,
// other formats are selected with a prefix: "hex:", "cond:" or "bech32:".
func ParseAddress(enc string) (Address, error) {
	chunks := strings.SplitN(enc, ":", 2)
	format := chunks[0]
	if len(chunks) == 1 {
		format = "hex"
	} else {
		enc = chunks[1]
	}

	if len(enc) == 0 {
		return nil, nil
	}

	switch format {
	case "hex":
		val, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode hex: %s", err)
		}
		addr := Address(val)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return addr, nil
	case "cond":
		var c Condition
		if err := c.parseString(enc); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	case "bech32":
		_, payload, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.Wrap(err, "bech32 address")
		}
		addr := Address(payload)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return addr, nil
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", chunks[0])
	}
}

// Bech32 returns the bech32 representation of this address using given
// human readable part.
func (a Address) Bech32(hrp string) (string, error) {
	raw, err := bech32.Encode(hrp, a)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// String returns the upper case hex form of the address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: %v", a)
	}
	return nil
}

// NewAddress returns the address of arbitrary data, usually a condition.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}
