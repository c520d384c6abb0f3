// Package nginx manages the single front-web vhost file and drives
// the proxy server running inside the compose stack.
package nginx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zionladder/frontweb/internal/compose"
)

// Server is the part of the driver the provisioner needs: validate
// the configuration, then apply it with a hot reload.
type Server interface {
	Test() error
	Reload() error
}

// serviceName is the compose service running the proxy.
const serviceName = "nginx"

// Nginx writes the rendered vhost and reloads the server through
// docker compose.
type Nginx struct {
	sitesDir  string
	vhostFile string
	compose   *compose.Compose
}

// New creates an Nginx driver writing to sitesDir/vhostFile.
func New(sitesDir, vhostFile string, c *compose.Compose) *Nginx {
	return &Nginx{
		sitesDir:  sitesDir,
		vhostFile: vhostFile,
		compose:   c,
	}
}

// VhostPath returns the path of the managed vhost file.
func (n *Nginx) VhostPath() string {
	return filepath.Join(n.sitesDir, n.vhostFile)
}

// WriteVhost writes content to the vhost path atomically: the file is
// written to a temporary sibling and renamed into place, so a reader
// never observes a partial document.
func (n *Nginx) WriteVhost(content string) error {
	if err := os.MkdirAll(n.sitesDir, 0755); err != nil {
		return fmt.Errorf("failed to create sites directory: %w", err)
	}

	path := n.VhostPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write vhost: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move vhost into place: %w", err)
	}

	return nil
}

// Test validates the nginx config syntax inside the container.
func (n *Nginx) Test() error {
	return n.compose.Exec(serviceName, "nginx", "-t")
}

// Reload reloads nginx to apply changes.
func (n *Nginx) Reload() error {
	return n.compose.Exec(serviceName, "nginx", "-s", "reload")
}
