// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratahr/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after the directory client is built, before the HTTP
// handler is built and requests are served.
//
// It probes the directory once so operators see a misconfiguration in the
// log at boot. A failed probe is logged, not returned: the directory may
// come up later and the readiness endpoint reports it meanwhile.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Probe:   appCfg.ProbeTimeout,
		Request: appCfg.RequestTimeout,
	})
	tc := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("probe", tc.Probe),
		zap.Duration("request", tc.Request))

	if deps.Directory == nil {
		return nil
	}

	probeCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Probe(), logger, "directory startup ping")
	defer cancel()

	if err := deps.Directory.Ping(probeCtx); err != nil {
		logger.Warn("user directory unreachable at startup",
			zap.String("backend", appCfg.DirectoryBackend),
			zap.Error(err))
		return nil
	}

	logger.Info("user directory reachable", zap.String("backend", appCfg.DirectoryBackend))
	return nil
}
