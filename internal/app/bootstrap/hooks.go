// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// Each function is called in order by app.Run, from configuration
// loading through directory setup, one-time startup work, HTTP handler
// construction, and finally graceful shutdown.
//
// The directory is read-only, so there is no EnsureSchema step.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "stratahr",     // used only for logging/diagnostics
	LoadConfig:     LoadConfig,     // load core + app config
	ValidateConfig: ValidateConfig, // validate backend, token mode and URIs
	ConnectDB:      ConnectDB,      // build the user directory client
	Startup:        Startup,        // probe the directory once
	BuildHandler:   BuildHandler,   // build the HTTP router + middleware stack
	Shutdown:       Shutdown,       // close directory connections on shutdown
}
