package migration

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/errors"
)

// SchemaMigratingHandler returns a handler that will ensure that
// incoming messages are in the current schema version format. If a
// message in an older schema is handled then it is first migrated.
// Messages that cannot be migrated to the current schema version return
// a migration error. This functionality is executed before the
// decorated handler and it is completely transparent to the wrapped
// handler.
func SchemaMigratingHandler(packageName string, h soteria.Handler) soteria.Handler {
	return &schemaMigratingHandler{
		handler:     h,
		packageName: packageName,
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}
}

// SchemaMigratingRegistry returns a registry that wraps every
// registered handler with a schema migrating handler for the given
// package.
func SchemaMigratingRegistry(packageName string, r soteria.Registry) soteria.Registry {
	return &schemaMigratingRegistry{
		reg: r,
		pkg: packageName,
	}
}

type schemaMigratingRegistry struct {
	reg soteria.Registry
	pkg string
}

func (r *schemaMigratingRegistry) Handle(msg soteria.Msg, h soteria.Handler) {
	r.reg.Handle(msg, SchemaMigratingHandler(r.pkg, h))
}

type schemaMigratingHandler struct {
	handler     soteria.Handler
	packageName string
	schema      *SchemaBucket
	migrations  *register
}

var _ soteria.Handler = (*schemaMigratingHandler)(nil)

func (h *schemaMigratingHandler) Check(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.CheckResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Check(ctx, db, tx)
}

func (h *schemaMigratingHandler) Deliver(ctx soteria.Context, db soteria.KVStore, tx soteria.Tx) (*soteria.DeliverResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Deliver(ctx, db, tx)
}

func (h *schemaMigratingHandler) migrate(db soteria.ReadOnlyKVStore, tx soteria.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}

	m, ok := msg.(Migratable)
	if !ok {
		return errors.Wrap(errors.ErrMsg, "message cannot be migrated")
	}
	currSchemaVer, err := h.schema.CurrentSchema(db, h.packageName)
	if err != nil {
		return errors.Wrap(err, "current message schema")
	}

	// Migration is applied in place, directly modifying the instance.
	if err := h.migrations.Apply(db, m, currSchemaVer); err != nil {
		return errors.Wrap(err, "schema migration")
	}
	return nil
}
