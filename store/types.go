package store

import "github.com/AlphaR2/soteria"

// Aliases for all storage types defined in the root package, so that
// code in this package can use the short names.

type ReadOnlyKVStore = soteria.ReadOnlyKVStore
type SetDeleter = soteria.SetDeleter
type KVStore = soteria.KVStore
type Batch = soteria.Batch
type Iterator = soteria.Iterator
type CacheableKVStore = soteria.CacheableKVStore
type KVCacheWrap = soteria.KVCacheWrap
type CommitKVStore = soteria.CommitKVStore
type CommitID = soteria.CommitID
type Model = soteria.Model
