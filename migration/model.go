package migration

import (
	"encoding/binary"

	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/orm"
)

func init() {
	MustRegister(1, &Schema{}, NoModification)
}

// Schema tracks the version of the data format that a package persists.
// One instance is stored for every (package, version) pair ever
// activated.
type Schema struct {
	Metadata *soteria.Metadata `json:"metadata"`
	// Pkg holds the name of the package that this migration is declared for.
	Pkg string `json:"pkg"`
	// Version is the highest supported schema version.
	Version uint32 `json:"version"`
}

var _ orm.CloneableData = (*Schema)(nil)

func (s *Schema) GetMetadata() *soteria.Metadata {
	return s.Metadata
}

func (s *Schema) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Schema) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

func (s *Schema) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if s.Version < 1 {
		return errors.Wrap(errors.ErrModel, "version must be greater than zero")
	}
	if s.Pkg == "" {
		return errors.Wrap(errors.ErrModel, "pkg is required")
	}
	return nil
}

func (s *Schema) Copy() orm.CloneableData {
	return &Schema{
		Metadata: s.Metadata.Copy(),
		Version:  s.Version,
		Pkg:      s.Pkg,
	}
}

// schemaID returns a deterministic ID of this schema instance. Created
// IDs can be sorted using lexicographical order from the lowest to the
// highest version.
func schemaID(pkg string, version uint32) []byte {
	raw := make([]byte, len(pkg)+4)
	copy(raw, pkg)
	binary.BigEndian.PutUint32(raw[len(pkg):], version)
	return raw
}

// SchemaBucket maintains the currently active schema version of every
// registered package.
type SchemaBucket struct {
	bucket orm.Bucket
}

func NewSchemaBucket() *SchemaBucket {
	// Schema bucket is using the plain orm.Bucket implementation so
	// that it can insert entities without a schema version being
	// registered. It cannot use the migration bucket implementation
	// because it would cause a circular dependency on itself.
	b := orm.NewBucket("schema", orm.NewSimpleObj(nil, &Schema{}))
	return &SchemaBucket{bucket: b}
}

// MustInitPkg initializes schema versioning for given package names.
// This registers a version one schema.
// This function panics if not successful. It is safe to call this
// function many times as duplicate registrations are ignored.
func MustInitPkg(db soteria.KVStore, packageNames ...string) {
	for _, name := range packageNames {
		_, err := NewSchemaBucket().Create(db, &Schema{
			Metadata: &soteria.Metadata{Schema: 1},
			Pkg:      name,
			Version:  1,
		})
		// Duplicated initializations are ignored.
		if err != nil && !errors.ErrDuplicate.Is(err) {
			panic(errors.Wrap(err, name))
		}
	}
}

// CurrentSchema returns the current version of the schema for a given
// package. It returns ErrNotFound if no schema version was registered
// for this package. Minimum schema version is 1.
func (b *SchemaBucket) CurrentSchema(db soteria.ReadOnlyKVStore, packageName string) (uint32, error) {
	for ver := uint32(1); ver < 10000; ver++ {
		key := schemaID(packageName, ver)
		obj, err := b.bucket.Get(db, key)
		if err != nil {
			return 0, errors.Wrap(err, "bucket get")
		}
		if obj != nil {
			continue
		}
		if ver == 1 {
			return 0, errors.Wrap(errors.ErrNotFound, "not initialized")
		}
		return ver - 1, nil
	}
	return 0, errors.Wrap(errors.ErrState, "version too high")
}

// Create adds given schema instance to the store and returns the object
// of the newly inserted entity.
func (b *SchemaBucket) Create(db soteria.KVStore, s *Schema) (orm.Object, error) {
	if err := b.validateNextSchema(db, s); err != nil {
		return nil, err
	}
	obj := orm.NewSimpleObj(schemaID(s.Pkg, s.Version), s)
	return obj, b.bucket.Save(db, obj)
}

// validateNextSchema returns an error if given Schema instance does not
// represent the next valid schema version.
func (b *SchemaBucket) validateNextSchema(db soteria.KVStore, next *Schema) error {
	ver, err := b.CurrentSchema(db, next.Pkg)
	if err != nil {
		if !errors.ErrNotFound.Is(err) {
			return errors.Wrap(err, "current schema")
		}
		if next.Version != 1 {
			return errors.Wrap(errors.ErrInput, "schema not initialized with version 1")
		}
		return nil
	}
	if ver+1 != next.Version {
		// Schema versioning is sequential and the numbers must be incrementing.
		return errors.Wrapf(errors.ErrDuplicate, "previous schema is %d", ver)
	}
	return nil
}

// RegisterQuery registers the schema bucket for querying.
func RegisterQuery(qr soteria.QueryRouter) {
	NewSchemaBucket().bucket.Register("schemas", qr)
}
