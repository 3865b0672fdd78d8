// internal/backend/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/raizes/internal/backend/store"
	"github.com/dalemusser/raizes/internal/backend/store/mongostore"
)

// DBDeps holds the opened record store. Mongo is set only for the mongo
// store so EnsureSchema can build its indexes.
type DBDeps struct {
	Store store.Store
	Mongo *mongostore.Store
}
