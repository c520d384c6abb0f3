package ssl

import (
	"os"
	"path/filepath"

	"github.com/zionladder/frontweb/internal/errors"
)

// stagingSuffix marks certificate names issued against the staging
// ACME endpoint. Staging and production certs for one apex coexist
// under different names.
const stagingSuffix = "-staging"

// composeRunner is the part of the compose package the client needs.
type composeRunner interface {
	RunRM(service, entrypoint string, args ...string) error
}

// StagingName returns the certificate name used for staging issuance
// of the given apex.
func StagingName(apex string) string {
	return apex + stagingSuffix
}

// Store answers whether a certificate record exists on disk. A record
// is the pair of artifact files certbot leaves under live/<name>; the
// contents are never parsed.
type Store struct {
	confDir string
}

// NewStore creates a Store over the letsencrypt state directory.
func NewStore(confDir string) *Store {
	return &Store{confDir: confDir}
}

// LiveDir returns the live directory of a certificate name.
func (s *Store) LiveDir(name string) string {
	return filepath.Join(s.confDir, "live", name)
}

// Exists reports whether both artifact files of the named certificate
// are present.
func (s *Store) Exists(name string) bool {
	live := s.LiveDir(name)
	return fileExists(filepath.Join(live, "fullchain.pem")) &&
		fileExists(filepath.Join(live, "privkey.pem"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Request describes one certificate issuance.
type Request struct {
	CertName string   // certbot --cert-name
	Names    []string // -d arguments, order preserved
	Staging  bool     // staging ACME endpoint
	Email    string   // empty registers without email
	Force    bool     // production only: force renewal instead of keep-until-expiring
}

// Client issues certificates by running certbot inside a one-off
// compose container with the webroot HTTP-01 challenge.
type Client struct {
	compose composeRunner
	webroot string
}

// NewClient creates a certbot client. webroot is the challenge
// directory path as seen from inside the certbot container.
func NewClient(c composeRunner, webroot string) *Client {
	return &Client{compose: c, webroot: webroot}
}

// Issue requests the certificate described by req. Success or failure
// is decided entirely by certbot's exit status; renewal semantics for
// production certs (keep vs force) are passed through, not evaluated.
func (c *Client) Issue(req Request) error {
	if err := c.compose.RunRM("certbot", "certbot", c.args(req)...); err != nil {
		return errors.WrapDomain(errors.ErrCodeSSL, req.CertName, "certificate request failed", err)
	}
	return nil
}

// args builds the certbot argument vector for a request.
func (c *Client) args(req Request) []string {
	args := []string{
		"certonly",
		"--webroot", "-w", c.webroot,
		"--non-interactive",
		"--preferred-challenges", "http",
		"--agree-tos",
		"--no-eff-email",
		"--cert-name", req.CertName,
	}

	if req.Staging {
		args = append(args, "--staging")
	}

	if req.Email != "" {
		args = append(args, "--email", req.Email)
	} else {
		args = append(args, "--register-unsafely-without-email")
	}

	// Renewal behavior only applies to production requests; staging
	// certs are requested at most once and never renewed here.
	if !req.Staging {
		if req.Force {
			args = append(args, "--force-renewal")
		} else {
			args = append(args, "--keep-until-expiring")
		}
	}

	for _, name := range req.Names {
		args = append(args, "-d", name)
	}
	return args
}
