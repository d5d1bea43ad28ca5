// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratahr/internal/app/features/errors"
	healthfeature "github.com/dalemusser/stratahr/internal/app/features/health"
	loginfeature "github.com/dalemusser/stratahr/internal/app/features/login"
	passwordtestfeature "github.com/dalemusser/stratahr/internal/app/features/passwordtest"
	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
	"github.com/dalemusser/stratahr/internal/app/system/apicors"
	"github.com/dalemusser/stratahr/internal/app/system/auditlog"
	"github.com/dalemusser/stratahr/internal/app/system/auth"
	"github.com/dalemusser/stratahr/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the directory client, and the
// Startup hook have completed. Every /api route sits behind the CORS
// negotiator so preflight requests never reach a handler.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Weak jwt secrets are fatal only in production.
	strict := coreCfg.Env == "prod"
	issuer, err := newIssuer(appCfg, strict, logger)
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(timeouts.Request()))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	mountRoutes(r, routeDeps{
		directory:      deps.Directory,
		issuer:         issuer,
		allowPlaintext: appCfg.AllowPlaintextSecrets,
		corsOrigins:    appCfg.CORSAllowedOrigins,
		diagnostics:    appCfg.DiagnosticsEnabled || coreCfg.Env == "dev",
		audit:          auditlog.New(logger, auditlog.Config{Auth: appCfg.AuditLogAuth}),
	}, logger)

	return r, nil
}

// routeDeps is everything the feature handlers are built from.
type routeDeps struct {
	directory      userstore.Directory
	issuer         auth.Issuer
	allowPlaintext bool
	corsOrigins    []string
	diagnostics    bool
	audit          *auditlog.Logger
}

// mountRoutes attaches the feature routers to r.
func mountRoutes(r chi.Router, d routeDeps, logger *zap.Logger) {
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	healthHandler := healthfeature.NewHandler(d.directory, logger)
	healthfeature.MountRootEndpoints(r, healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(apicors.FromConfig(d.corsOrigins))

		r.Mount("/health", healthfeature.Routes(healthHandler))

		loginHandler := loginfeature.NewHandler(
			d.directory,
			d.issuer,
			d.allowPlaintext,
			errLog,
			d.audit,
			logger,
		)
		r.Mount("/login", loginfeature.Routes(loginHandler))

		// Diagnostic endpoint: echoes the submitted password, so never in prod
		// unless explicitly enabled.
		if d.diagnostics {
			passwordTestHandler := passwordtestfeature.NewHandler(errLog, logger)
			r.Mount("/test-password", passwordtestfeature.Routes(passwordTestHandler))
			logger.Warn("password diagnostic endpoint enabled at /api/test-password")
		}

		r.NotFound(errorsHandler.NotFound)
	})

	// 404 catch-all for unmatched routes
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)
}

// newIssuer builds the login token issuer for the configured mode.
func newIssuer(appCfg AppConfig, strict bool, logger *zap.Logger) (auth.Issuer, error) {
	if appCfg.TokenMode == auth.ModeJWT {
		jwtIssuer, err := auth.NewJWTIssuer(appCfg.TokenSecret, appCfg.TokenTTL, strict, logger)
		if err != nil {
			return nil, err
		}
		return jwtIssuer, nil
	}
	return auth.NewDemoIssuer(appCfg.TokenPrefix), nil
}
