package cli

import (
	"github.com/zionladder/frontweb/internal/output"
	"github.com/zionladder/frontweb/internal/template"
	"github.com/spf13/cobra"
)

var renderStdout bool

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the nginx vhost once",
	Long: `Load the domain list and proxy target and write the HTTP vhost.

Examples:
  frontweb render
  frontweb render --stdout   # print instead of writing`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "Print the rendered vhost instead of writing it")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := newLoader(cfg).Load()
	if err != nil {
		return err
	}

	conf, err := template.RenderHTTP(template.VhostData{
		Domains:       src.Domains,
		ProxyPass:     src.ProxyPass,
		ChallengeRoot: cfg.ChallengeRoot,
	})
	if err != nil {
		return err
	}

	if renderStdout {
		output.Print("%s", conf)
		return nil
	}

	ng := newNginx(cfg)
	if err := ng.WriteVhost(conf); err != nil {
		return err
	}

	return outputResult(renderResult{
		Success:   true,
		Path:      ng.VhostPath(),
		Domains:   src.Domains,
		ProxyPass: src.ProxyPass,
	}, "wrote vhost to %s (reload nginx to apply)", ng.VhostPath())
}

type renderResult struct {
	Success   bool     `json:"success"`
	Path      string   `json:"path"`
	Domains   []string `json:"domains"`
	ProxyPass string   `json:"proxy_pass"`
}
