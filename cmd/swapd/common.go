package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/app"
	swapapp "github.com/iov-one/weaveswap/cmd/swapd/app"
	"github.com/iov-one/weaveswap/crypto"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/x/sigs"
	"github.com/iov-one/weaveswap/x/whitelist"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

const (
	genesisFile = "genesis.json"
	stateDB     = "state.db"
	keysDir     = "keys"
)

// node is a ledger opened from the home directory.
type node struct {
	ledger *app.Ledger
	close  func()
}

// openNode loads the ledger state kept in the home directory.
func openNode(home string) (*node, error) {
	issuer, err := loadIssuer(home)
	if err != nil {
		return nil, err
	}
	stack, err := swapapp.Stack(issuer, prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}
	kv, err := swapapp.CommitKVStore(filepath.Join(home, stateDB))
	if err != nil {
		return nil, err
	}
	ledger, err := app.NewLedger(kv, swapapp.TxDecoder, stack, swapapp.QueryRouter())
	if err != nil {
		return nil, err
	}
	ledger.WithLogger(newLogger())

	closeFn := func() {}
	if c, ok := kv.(interface{ Close() }); ok {
		closeFn = c.Close
	}
	return &node{ledger: ledger, close: closeFn}, nil
}

// loadIssuer returns the address allowed to manage tokens. It is the
// whitelist administrator declared in the genesis file, if any.
func loadIssuer(home string) (weave.Address, error) {
	path := filepath.Join(home, genesisFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	gen, err := app.LoadGenesis(path)
	if err != nil {
		return nil, err
	}
	var confs weave.Options
	if err := gen.AppState.ReadOptions("gconf", &confs); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "gconf: %s", err)
	}
	var conf whitelist.Configuration
	if err := confs.ReadOptions("whitelist", &conf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "whitelist configuration: %s", err)
	}
	return conf.Admin, nil
}

// newLogger returns a logger writing to stderr. The level is set with the
// SWAPD_LOG environment variable and defaults to "error".
func newLogger() log.Logger {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	opt, err := log.AllowLevel(env("SWAPD_LOG", "error"))
	if err != nil {
		opt = log.AllowError()
	}
	return log.NewFilter(logger, opt)
}

// submit signs given message with the key, checks it and delivers it as a
// block of its own. The block is committed before returning.
func (n *node) submit(key *crypto.PrivateKey, msg weave.Msg, at time.Time) (*weave.DeliverResult, error) {
	if at.IsZero() {
		at = time.Now()
	}
	chainID := n.ledger.ChainID()
	if chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "ledger not initialized, run init first")
	}
	seq, err := n.sequence(key.PublicKey().Address())
	if err != nil {
		return nil, err
	}
	tx, err := swapapp.SignTx(msg, chainID, []crypto.Signer{key}, []int64{seq})
	if err != nil {
		return nil, err
	}
	raw, err := tx.Marshal()
	if err != nil {
		return nil, err
	}
	if _, err := n.ledger.CheckTx(raw, at); err != nil {
		return nil, errors.Wrap(err, "check")
	}
	res, err := n.ledger.DeliverTx(raw, at)
	if err != nil {
		return nil, errors.Wrap(err, "deliver")
	}
	if _, err := n.ledger.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return res, nil
}

// sequence returns the sequence the next signature of given signer must use.
func (n *node) sequence(signer weave.Address) (seq int64, err error) {
	err = n.ledger.View(func(db weave.ReadOnlyKVStore) error {
		seq, err = sigs.NextNonce(db, signer)
		return err
	})
	return seq, err
}

// keyPath returns the location of the private key with given name.
func keyPath(home, name string) string {
	return filepath.Join(home, keysDir, name+".key")
}

// loadKey reads the raw ed25519 private key with given name.
func loadKey(home, name string) (*crypto.PrivateKey, error) {
	if name == "" {
		return nil, errors.Wrap(errors.ErrInput, "key name required")
	}
	raw, err := ioutil.ReadFile(keyPath(home, name))
	if err != nil {
		return nil, fmt.Errorf("cannot read %q key: %s", name, err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid key file %q", name)
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}

// writeKey stores a new private key under given name. It never overwrites an
// existing key.
func writeKey(home, name string) (*crypto.PrivateKey, error) {
	path := keyPath(home, name)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first.
		return nil, fmt.Errorf("private key file %q already exists, delete this file and try again", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("cannot create keys directory: %s", err)
	}
	key := crypto.GenPrivKeyEd25519()
	if err := ioutil.WriteFile(path, key.Ed25519, 0600); err != nil {
		return nil, fmt.Errorf("cannot write private key: %s", err)
	}
	return key, nil
}

// addressOf returns the address given explicitly or the address of the named
// key.
func addressOf(home string, addr weave.Address, keyName string) (weave.Address, error) {
	if len(addr) != 0 {
		return addr, nil
	}
	key, err := loadKey(home, keyName)
	if err != nil {
		return nil, err
	}
	return key.PublicKey().Address(), nil
}
