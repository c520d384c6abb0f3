package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tool settings. Every field has a default matching
// the docker-compose layout the tool was built for; a settings file is
// only needed to deviate from it.
type Config struct {
	// Candidate locations for the two source files, probed in order.
	DomainCandidates []string `yaml:"domain_candidates,omitempty"`
	ProxyCandidates  []string `yaml:"proxy_candidates,omitempty"`

	// SitesDir receives the rendered vhost file (VhostFile).
	SitesDir  string `yaml:"sites_dir"`
	VhostFile string `yaml:"vhost_file"`

	// ComposeDir is the docker compose project directory.
	ComposeDir string `yaml:"compose_dir"`

	// DataDir is the root for nginx/certbot state directories.
	DataDir string `yaml:"data_dir"`

	// CertbotConfDir holds the letsencrypt state, including live/<name>.
	CertbotConfDir string `yaml:"certbot_conf_dir"`

	// CertbotWebroot is the challenge webroot path inside the certbot
	// container, passed to certbot -w.
	CertbotWebroot string `yaml:"certbot_webroot"`

	// ChallengeRoot is the challenge root path inside the nginx
	// container, rendered into the vhost.
	ChallengeRoot string `yaml:"challenge_root"`

	// PollSeconds is the watch loop interval.
	PollSeconds int `yaml:"poll_seconds"`

	// PublicIPURL is the IP-echo service queried for the host's
	// public IPv4 address.
	PublicIPURL string `yaml:"public_ip_url"`
}

const configFile = "frontweb.yaml"

// New creates a Config with default values.
func New() *Config {
	return &Config{
		SitesDir:       "/app/nginx-sites",
		VhostFile:      "00-front-web-http.conf",
		ComposeDir:     ".",
		DataDir:        "data",
		CertbotConfDir: filepath.Join("data", "certbot", "conf"),
		CertbotWebroot: "/var/www/certbot",
		ChallengeRoot:  "/var/www/certbot",
		PollSeconds:    5,
		PublicIPURL:    "https://ifconfig.me",
	}
}

// Load reads the settings file at path, or the default frontweb.yaml
// in the working directory when path is empty. A missing file yields
// the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = configFile
	}

	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if cfg.PollSeconds <= 0 {
		cfg.PollSeconds = 5
	}

	return cfg, nil
}

// Interval returns the watch loop poll interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

// VhostPath returns the full path of the rendered vhost file.
func (c *Config) VhostPath() string {
	return filepath.Join(c.SitesDir, c.VhostFile)
}

// DomainPaths returns the candidate locations of the domain list.
func (c *Config) DomainPaths() []string {
	if len(c.DomainCandidates) > 0 {
		return c.DomainCandidates
	}
	return defaultCandidates("domain.list")
}

// ProxyPaths returns the candidate locations of the proxy-pass file.
func (c *Config) ProxyPaths() []string {
	if len(c.ProxyCandidates) > 0 {
		return c.ProxyCandidates
	}
	return defaultCandidates("proxy_pass")
}

// DataDirs returns the state directories created before provisioning.
func (c *Config) DataDirs() []string {
	return []string{
		filepath.Join(c.DataDir, "nginx", "sites"),
		filepath.Join(c.DataDir, "nginx", "logs"),
		filepath.Join(c.DataDir, "certbot", "www"),
		filepath.Join(c.DataDir, "certbot", "conf"),
	}
}

// defaultCandidates lists the well-known locations for a source file.
// The container mounts ./app at /app/app; older layouts and host runs
// are covered by the remaining entries.
func defaultCandidates(name string) []string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return []string{
		filepath.Join("/app", "app", name),
		filepath.Join("/app", name),
		filepath.Join(cwd, "app", name),
		filepath.Join(cwd, name),
	}
}
