// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"database/sql"

	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: Startup, BuildHandler, and Shutdown.
//
// Directory is nil when the directory is not configured; login then
// answers with the configuration error instead of the process refusing
// to start. At most one of MongoClient and SQLDB is set, depending on the
// backend; Shutdown closes whichever is present.
type DBDeps struct {
	Directory userstore.Directory

	MongoClient *mongo.Client
	SQLDB       *sql.DB
}
