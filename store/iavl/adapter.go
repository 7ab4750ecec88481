package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/store"
)

// Number of tree nodes held in memory before eviction.
const cacheSize = 10000

// CommitStore manages a merkle tree with committed state on disk.
//
// All reads and batched writes act on the current working tree. Commit
// persists the working tree as the next version.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore loads the CommitStore from disk or panics. It will
// create a new instance if no data is present.
func NewCommitStore(dir, name string) *CommitStore {
	db := dbm.NewDB(name, dbm.LevelDBBackend, dir)
	return &CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
	}
}

// MockCommitStore returns a CommitStore backed by memory, lost on
// process exit. Useful for tests.
func MockCommitStore() *CommitStore {
	return &CommitStore{
		tree: iavl.NewMutableTree(dbm.NewMemDB(), cacheSize),
	}
}

// Get returns the value stored under given key in the working tree.
// Returns nil if the key does not exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.Get(key)
	return value, nil
}

// Has checks the existence of a key in the working tree.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, false), nil
}

func (s *CommitStore) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	collect := func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	}
	s.tree.IterateRange(start, end, ascending, collect)
	return store.NewSliceIterator(res)
}

// Set updates the working tree.
func (s *CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes a key from the working tree.
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that applies a group of writes to the
// working tree when written.
func (s *CommitStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(s)
}

// CacheWrap layers a scratch-pad btree on the working tree. Writing the
// wrap only updates the working tree, the state is not persisted until
// Commit is called.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit saves the working tree as the next version on disk and
// returns its id.
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version. If there was a
// crash during the last commit, it is guaranteed to return a stable
// state, even if older.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}
