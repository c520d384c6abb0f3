package cli

import (
	"time"

	"github.com/zionladder/frontweb/internal/logger"
	"github.com/zionladder/frontweb/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchInterval time.Duration
	watchOnce     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source files and keep the vhost rendered",
	Long: `Run the config watcher: load the domain list and proxy target,
render the nginx HTTP vhost, then poll both files for changes and
re-render on every change.

A reload failure (missing file, zero domains) keeps the last good
vhost in place; only a failure at startup is fatal. The loop runs
until the process is terminated.

Examples:
  frontweb watch
  frontweb watch --interval 10s
  frontweb watch --once`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Poll interval (default from settings, 5s)")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Render once and exit instead of watching")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interval := cfg.Interval()
	if watchInterval > 0 {
		interval = watchInterval
	}

	// The watcher is a long-running unattended process; its reload
	// activity should be visible without --verbose.
	logger.SetLevel(logger.LevelInfo)
	logger.Info("front-web watcher starting...")

	w := watcher.New(newLoader(cfg), newNginx(cfg), cfg.ChallengeRoot, interval)

	if watchOnce {
		return w.Start()
	}
	return w.Run(nil)
}
