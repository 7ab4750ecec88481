package store

import (
	"testing"
)

func memSuite() *TestSuite {
	return NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
}

func TestBTreeCacheGetSet(t *testing.T) {
	memSuite().GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	memSuite().CacheConflicts(t)
}

func TestBTreeFuzzIterator(t *testing.T) {
	memSuite().FuzzIterator(t)
}

func TestBTreeIteratorWithConflicts(t *testing.T) {
	memSuite().IteratorWithConflicts(t)
}
