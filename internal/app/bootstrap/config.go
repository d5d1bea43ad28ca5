// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"
	"time"

	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
	"github.com/dalemusser/stratahr/internal/app/system/auditlog"
	"github.com/dalemusser/stratahr/internal/app/system/auth"
	"github.com/dalemusser/stratahr/internal/app/system/normalize"
	"github.com/dalemusser/stratahr/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATAHR"

// Unprefixed variables read by existing serverless deployments. They fill
// in the supabase URL and key when the prefixed values are empty.
const (
	legacyURLEnv = "SUPABASE_URL"
	legacyKeyEnv = "SUPABASE_ANON_KEY"
)

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: directory_url, token_mode, etc.
//   - Environment variables: STRATAHR_DIRECTORY_URL, STRATAHR_TOKEN_MODE, etc.
//   - Command-line flags: --directory_url, --token_mode, etc.
var appConfigKeys = []config.AppKey{
	// User directory
	{Name: "directory_backend", Default: userstore.BackendSupabase, Desc: "User directory backend: 'supabase', 'postgres' or 'mongo'"},
	{Name: "directory_url", Default: "", Desc: "Directory address: REST base URL, Postgres DSN or MongoDB URI"},
	{Name: "directory_key", Default: "", Desc: "Directory credential: API key (supabase) or password (postgres, mongo)"},
	{Name: "directory_user", Default: "", Desc: "MongoDB username (blank to use URI credentials)"},
	{Name: "directory_database", Default: "stratahr", Desc: "MongoDB database holding the users collection"},

	// CORS for /api routes
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated allowed origins for /api ('*' for any)"},

	// Login tokens
	{Name: "token_mode", Default: auth.ModeDemo, Desc: "Login token format: 'demo' or 'jwt'"},
	{Name: "token_prefix", Default: auth.DefaultDemoPrefix, Desc: "Prefix for demo tokens"},
	{Name: "token_secret", Default: "", Desc: "HS256 signing secret for jwt tokens (32+ chars in production)"},
	{Name: "token_ttl", Default: "24h", Desc: "Lifetime of jwt tokens (e.g., 1h, 24h)"},

	{Name: "allow_plaintext_secrets", Default: true, Desc: "Accept directory secrets that are not bcrypt hashes"},
	{Name: "diagnostics_enabled", Default: false, Desc: "Serve /api/test-password outside dev"},

	// Timeouts
	{Name: "probe_timeout", Default: "5s", Desc: "Timeout for directory reachability checks"},
	{Name: "request_timeout", Default: "30s", Desc: "Upper bound on handling one request"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: auditlog.SettingLog, Desc: "Auth event logging: 'log' or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATAHR_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		DirectoryBackend:  appValues.String("directory_backend"),
		DirectoryURL:      appValues.String("directory_url"),
		DirectoryKey:      appValues.String("directory_key"),
		DirectoryUser:     appValues.String("directory_user"),
		DirectoryDatabase: appValues.String("directory_database"),

		CORSAllowedOrigins: originList(appValues.String("cors_allowed_origins")),

		TokenMode:   appValues.String("token_mode"),
		TokenPrefix: appValues.String("token_prefix"),
		TokenSecret: appValues.String("token_secret"),
		TokenTTL:    appValues.Duration("token_ttl", 24*time.Hour),

		AllowPlaintextSecrets: appValues.Bool("allow_plaintext_secrets"),
		DiagnosticsEnabled:    appValues.Bool("diagnostics_enabled"),

		ProbeTimeout:   appValues.Duration("probe_timeout", timeouts.DefaultProbe),
		RequestTimeout: appValues.Duration("request_timeout", timeouts.DefaultRequest),

		AuditLogAuth: appValues.String("audit_log_auth"),
	}
	applyLegacyEnv(&appCfg, os.Getenv)

	return coreCfg, appCfg, nil
}

// applyLegacyEnv fills the supabase URL and key from the unprefixed
// variables when they were not configured.
func applyLegacyEnv(appCfg *AppConfig, getenv func(string) string) {
	if appCfg.DirectoryBackend != "" && appCfg.DirectoryBackend != userstore.BackendSupabase {
		return
	}
	if appCfg.DirectoryURL == "" {
		appCfg.DirectoryURL = getenv(legacyURLEnv)
	}
	if appCfg.DirectoryKey == "" {
		appCfg.DirectoryKey = getenv(legacyKeyEnv)
	}
}

func originList(raw string) []string {
	var out []string
	for _, o := range normalize.List(raw) {
		out = append(out, normalize.Origin(o))
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// A missing directory URL or key is not fatal: the process still serves
// health checks and login reports the configuration error per request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !userstore.ValidBackend(appCfg.DirectoryBackend) {
		logger.Error("unknown directory backend", zap.String("backend", appCfg.DirectoryBackend))
		return fmt.Errorf("unknown directory backend: %q", appCfg.DirectoryBackend)
	}

	if !auth.ValidMode(appCfg.TokenMode) {
		logger.Error("unknown token mode", zap.String("mode", appCfg.TokenMode))
		return fmt.Errorf("unknown token mode: %q", appCfg.TokenMode)
	}
	if appCfg.TokenMode == auth.ModeJWT && appCfg.TokenSecret == "" {
		return fmt.Errorf("token_secret is required when token_mode is %q", auth.ModeJWT)
	}

	if appCfg.DirectoryBackend == userstore.BackendMongo && appCfg.DirectoryURL != "" {
		if err := wafflemongo.ValidateURI(appCfg.DirectoryURL); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	if !appCfg.DirectoryConfigured() {
		logger.Warn("user directory is not configured; logins will fail until it is",
			zap.String("backend", appCfg.DirectoryBackend),
			zap.Bool("url_set", appCfg.DirectoryURL != ""),
			zap.Bool("key_set", appCfg.DirectoryKey != ""),
		)
	}

	return nil
}
