package orm

import (
	"github.com/AlphaR2/soteria"
)

// Object is what is stored in the bucket.
// Key is joined with the bucket prefix to build the full db key.
// Value is the serialized data stored under that key.
type Object interface {
	Keyed
	Cloneable

	// Validate returns an error if the object is not in a valid state
	// to save to the db (eg. field missing, out of range, ...).
	Validate() error

	Value() soteria.Persistent
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is an intelligent value that can be embedded in a
// simple object to handle much of the details.
type CloneableData interface {
	soteria.Persistent
	Validate() error
	Copy() CloneableData
}

// Reader defines an interface that allows reading objects from the db.
type Reader interface {
	Get(db soteria.ReadOnlyKVStore, key []byte) (Object, error)
}
