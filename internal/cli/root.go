package cli

import (
	"errors"
	"os"
	"os/exec"

	"github.com/zionladder/frontweb/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	configPath string
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "frontweb",
	Short: "Reverse-proxy front-end provisioner",
	Long: `frontweb provisions the nginx front-end of a docker-compose stack.

It renders the HTTP vhost from a domain list and a proxy target,
watches both files for changes, and orchestrates Let's Encrypt
certificate issuance per apex-domain group via certbot.`,
}

// Execute runs the root command
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		// External command failures carry their exit status through.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the settings file (default frontweb.yaml)")
}
