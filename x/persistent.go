package x

// Validater is implemented by every message and model that can check its
// own consistency before being processed or stored.
type Validater interface {
	Validate() error
}
