package soteriatest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem
// backend to store the data. Use instead of store.MemStore when you
// want the exact same storage implementation as a production instance.
func CommitKVStore(t testing.TB) (db soteria.CommitKVStore, cleanup func()) {
	t.Helper()

	dbpath, err := ioutil.TempDir("", t.Name())
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	db = iavl.NewCommitStore(dbpath, "db")
	return db, func() { os.RemoveAll(dbpath) }
}
