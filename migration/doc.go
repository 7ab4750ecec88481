/*
Package migration provides tooling necessary for working with schema
versioned entities. Functionality provided here can be applied both to
messages and models.

Extension integration:

1. declare a Metadata attribute on every message and model that is to be
schema versioned. Make sure that whenever you create a new entity the
metadata attribute is provided, as nil metadata is not valid.

2. register your migration functions in the package init. Schema version
is declared per package, not per entity, so each upgrade must provide a
migration function for all entities. Use migration.NoModification for
those entities that require no change. For example:

    func init() {
        migration.MustRegister(1, &MyModel{}, migration.NoModification)
        migration.MustRegister(1, &MyMessage{}, migration.NoModification)
    }

3. change your bucket implementation to embed migration.Bucket instead
of orm.Bucket,

4. wrap your handlers with migration.SchemaMigratingHandler to ensure
all messages are migrated to the latest schema before being handled,

5. initialize the package schema during genesis with MustInitPkg.
*/
package migration
