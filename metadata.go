package soteria

import (
	"github.com/AlphaR2/soteria/errors"
)

// Metadata is carried by every persistent entity and message. It binds
// the payload to a schema version so that the migration package can
// upgrade stored data on the fly.
type Metadata struct {
	Schema uint32 `json:"schema"`
}

// Validate returns an error if the metadata is not valid. Nil metadata
// is not valid, every persisted entity must declare its schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "nil")
	}
	if m.Schema == 0 {
		return errors.Wrap(errors.ErrMetadata, "schema version missing")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when
// implementing orm.CloneableData interface to make a copy of the
// header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
