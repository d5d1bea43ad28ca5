// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//   - Environment name (dev/prod)
//
// AppConfig is built once at start and handed to the handlers that need it;
// handlers never read the environment themselves.
type AppConfig struct {
	// User directory configuration
	DirectoryBackend  string // "supabase", "postgres" or "mongo"
	DirectoryURL      string // REST base URL, Postgres DSN or MongoDB URI
	DirectoryKey      string // API key (supabase) or password (postgres, mongo)
	DirectoryUser     string // MongoDB username; blank means credentials come from the URI
	DirectoryDatabase string // MongoDB database holding the users collection

	// CORS for /api routes. Empty or "*" means any origin.
	CORSAllowedOrigins []string

	// Login token configuration
	TokenMode   string        // "demo" (prefix + user id) or "jwt"
	TokenPrefix string        // prefix for demo tokens (default: demo-token-)
	TokenSecret string        // HS256 signing secret for jwt mode
	TokenTTL    time.Duration // jwt lifetime (default: 24h)

	// Accept stored secrets that are not bcrypt hashes.
	AllowPlaintextSecrets bool

	// Mount /api/test-password outside dev.
	DiagnosticsEnabled bool

	// Timeouts
	ProbeTimeout   time.Duration // directory reachability checks (default: 5s)
	RequestTimeout time.Duration // per-request upper bound (default: 30s)

	// Audit logging configuration
	// Values: "log" (zap), "off" (disabled)
	AuditLogAuth string
}

// DirectoryConfigured reports whether enough is set to reach the directory.
// MongoDB may carry its credentials in the URI, so only the URL is required
// there.
func (c AppConfig) DirectoryConfigured() bool {
	if c.DirectoryURL == "" {
		return false
	}
	if c.DirectoryBackend == userstore.BackendMongo {
		return true
	}
	return c.DirectoryKey != ""
}
