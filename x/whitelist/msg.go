package whitelist

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/errors"
)

func init() {
	codec.RegisterMsg(&AddMsg{}, "whitelist/add")
	codec.RegisterMsg(&SwitchMsg{}, "whitelist/switch")
	codec.RegisterMsg(&UpdateConfigurationMsg{}, "whitelist/update_configuration")
}

// AddMsg puts an owner on the whitelist.
type AddMsg struct {
	Owner weave.Address `json:"owner"`
}

var _ weave.Msg = (*AddMsg)(nil)

func (AddMsg) Path() string {
	return "whitelist/add"
}

func (m *AddMsg) Validate() error {
	return errors.Wrap(m.Owner.Validate(), "owner")
}

func (m *AddMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *AddMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// SwitchMsg toggles the whitelisted state of an existing entry.
type SwitchMsg struct {
	Owner weave.Address `json:"owner"`
}

var _ weave.Msg = (*SwitchMsg)(nil)

func (SwitchMsg) Path() string {
	return "whitelist/switch"
}

func (m *SwitchMsg) Validate() error {
	return errors.Wrap(m.Owner.Validate(), "owner")
}

func (m *SwitchMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *SwitchMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// UpdateConfigurationMsg changes the whitelist administrator.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return "whitelist/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}
