package gconf

import (
	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/errors"
)

// ReadStore is the part of weave.ReadOnlyKVStore needed to load a
// configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of weave.KVStore needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler can validate and serialize itself.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler can load itself from its serialized form.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is a package configuration that can be stored and loaded.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func configKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates src and stores it as the configuration of given package,
// replacing the previous one.
func Save(db Store, pkg string, src ValidMarshaler) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s configuration", pkg)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	return db.Set(configKey(pkg), raw)
}

// Load reads the configuration of given package into dst. ErrNotFound is
// returned if the package configuration was never saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	raw, err := db.Get(configKey(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(err, "load %s configuration", pkg)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %s configuration", pkg)
	}
	return nil
}

// InitConfig saves the configuration of given package found in the "gconf"
// section of the genesis, under the package name. A missing entry is an
// ErrNotFound error.
func InitConfig(db Store, opts weave.Options, pkg string, conf Configuration) error {
	var confs weave.Options
	if err := opts.ReadOptions("gconf", &confs); err != nil {
		return errors.Wrap(err, "read gconf")
	}
	if confs[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration in genesis", pkg)
	}
	if err := confs.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read %s configuration", pkg)
	}
	return Save(db, pkg, conf)
}
