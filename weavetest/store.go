package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/store/iavl"
)

// CommitKVStore returns a leveldb backed iavl store living in a temporary
// directory, the same engine a swap node persists its ledger with. Call
// cleanup to close the store and remove the directory.
func CommitKVStore(t testing.TB) (db weave.CommitKVStore, cleanup func()) {
	dir, err := ioutil.TempDir("", "weaveswap")
	if err != nil {
		t.Fatalf("temporary directory: %s", err)
	}
	s := iavl.NewCommitStore(dir, "state")
	return s, func() {
		s.Close()
		os.RemoveAll(dir)
	}
}
