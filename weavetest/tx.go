package weavetest

import "github.com/iov-one/weaveswap"

// Tx is a transaction carrying a single message. Err, when set, is returned
// instead of the message.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("weavetest.Tx cannot be deserialized")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("weavetest.Tx cannot be serialized")
}

// Msg is a message routed by RoutePath. Serialized is returned by Marshal
// and overwritten by Unmarshal. Err, when set, is returned by every method
// that can fail, including Validate.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
