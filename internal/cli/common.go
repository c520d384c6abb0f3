package cli

import (
	"fmt"

	"github.com/zionladder/frontweb/internal/compose"
	"github.com/zionladder/frontweb/internal/config"
	"github.com/zionladder/frontweb/internal/nginx"
	"github.com/zionladder/frontweb/internal/output"
	"github.com/zionladder/frontweb/internal/source"
)

// loadConfig reads the settings file named by the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return cfg, nil
}

// newLoader creates the source loader for the configured candidate paths.
func newLoader(cfg *config.Config) *source.Loader {
	return source.NewLoader(cfg.DomainPaths(), cfg.ProxyPaths())
}

// newNginx creates the nginx driver bound to the compose stack.
func newNginx(cfg *config.Config) *nginx.Nginx {
	return nginx.New(cfg.SitesDir, cfg.VhostFile, compose.New(cfg.ComposeDir))
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}
