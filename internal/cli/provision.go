package cli

import (
	"context"

	"github.com/zionladder/frontweb/internal/compose"
	"github.com/zionladder/frontweb/internal/config"
	"github.com/zionladder/frontweb/internal/netcheck"
	"github.com/zionladder/frontweb/internal/output"
	"github.com/zionladder/frontweb/internal/provision"
	"github.com/zionladder/frontweb/internal/ssl"
	"github.com/spf13/cobra"
)

var (
	provEnvFile string
	provEmail   string
	provStaging bool
	provProd    bool
	provForce   bool
	provSkipDNS bool
	provUp      bool
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Issue certificates per apex group and reload nginx",
	Long: `Run one provisioning pass: group the domain list by apex, verify
each apex's A record against this host's public IP, request staging
and/or production certificates through certbot, then validate and
reload nginx.

Toggles come from the environment (DO_STAGING, DO_PROD, FORCE_PROD,
CHECK_A_RECORD, CERTBOT_EMAIL), optionally seeded from a .env file;
flags override both.

Examples:
  frontweb provision --up
  frontweb provision --prod --email ops@example.com
  frontweb provision --skip-dns-check`,
	RunE: runProvision,
}

func init() {
	provisionCmd.Flags().StringVar(&provEnvFile, "env-file", "", "Env file seeding unset toggles (default .env)")
	provisionCmd.Flags().StringVarP(&provEmail, "email", "e", "", "Notification email for Let's Encrypt")
	provisionCmd.Flags().BoolVar(&provStaging, "staging", true, "Request staging certificates")
	provisionCmd.Flags().BoolVar(&provProd, "prod", false, "Request production certificates")
	provisionCmd.Flags().BoolVar(&provForce, "force", false, "Force production renewal instead of keep-until-expiring")
	provisionCmd.Flags().BoolVar(&provSkipDNS, "skip-dns-check", false, "Skip the A-record verification gate")
	provisionCmd.Flags().BoolVar(&provUp, "up", false, "Bring the compose stack up first")

	rootCmd.AddCommand(provisionCmd)
}

// provisionSettings merges environment toggles with explicitly set flags.
func provisionSettings(cmd *cobra.Command) config.ProvisionSettings {
	settings := config.LoadProvisionSettings(provEnvFile)

	if cmd.Flags().Changed("email") {
		settings.Email = provEmail
	}
	if cmd.Flags().Changed("staging") {
		settings.Staging = provStaging
	}
	if cmd.Flags().Changed("prod") {
		settings.Production = provProd
	}
	if cmd.Flags().Changed("force") {
		settings.ForceProduction = provForce
	}
	if provSkipDNS {
		settings.CheckARecord = false
	}

	return settings
}

func runProvision(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	settings := provisionSettings(cmd)

	if err := provision.EnsureDirs(cfg); err != nil {
		return err
	}

	stack := compose.New(cfg.ComposeDir)
	if provUp {
		output.Info("Bringing stack up...")
		if err := stack.Up(); err != nil {
			return err
		}
	}

	ng := newNginx(cfg)
	p := provision.New(
		newLoader(cfg),
		ssl.NewStore(cfg.CertbotConfDir),
		ssl.NewClient(stack, cfg.CertbotWebroot),
		ng,
		netcheck.NewHTTPIPLookup(cfg.PublicIPURL),
		netcheck.NewNetResolver(),
		settings,
	)

	if err := p.Run(context.Background()); err != nil {
		return err
	}

	return outputResult(map[string]interface{}{
		"success": true,
	}, "Provisioning pass complete")
}
