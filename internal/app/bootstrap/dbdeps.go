// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/raizes/internal/app/system/apiclient"
)

// DBDeps holds the back-end dependencies for the app. The front-end owns
// no database; its only backend is the REST API reached through Client.
type DBDeps struct {
	Client *apiclient.Client
}
