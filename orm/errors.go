package orm

import (
	"github.com/iov-one/weaveswap/errors"
)

// orm reserves error codes 100 to 109.

// ErrInvalidIndex is returned when querying an index a bucket does not
// have.
var ErrInvalidIndex = errors.Register(100, "invalid index")
