// Package provision orchestrates certificate issuance per apex group
// and reloads the proxy afterwards.
//
// The orchestrator is deliberately sequential: one certbot invocation
// at a time, in lexicographic apex order, so two requests can never
// race on the same certificate name. Every skip is logged with the
// values that caused it.
package provision

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/zionladder/frontweb/internal/config"
	"github.com/zionladder/frontweb/internal/domain"
	"github.com/zionladder/frontweb/internal/logger"
	"github.com/zionladder/frontweb/internal/netcheck"
	"github.com/zionladder/frontweb/internal/nginx"
	"github.com/zionladder/frontweb/internal/source"
	"github.com/zionladder/frontweb/internal/ssl"
)

// certStore answers whether a certificate record already exists.
type certStore interface {
	Exists(name string) bool
}

// certClient issues certificates.
type certClient interface {
	Issue(req ssl.Request) error
}

// Provisioner runs one provisioning pass over the current domain list.
type Provisioner struct {
	loader   *source.Loader
	store    certStore
	client   certClient
	server   nginx.Server
	lookup   netcheck.IPLookup
	resolver netcheck.Resolver
	settings config.ProvisionSettings
}

// New creates a Provisioner with all collaborators injected.
func New(
	loader *source.Loader,
	store certStore,
	client certClient,
	server nginx.Server,
	lookup netcheck.IPLookup,
	resolver netcheck.Resolver,
	settings config.ProvisionSettings,
) *Provisioner {
	return &Provisioner{
		loader:   loader,
		store:    store,
		client:   client,
		server:   server,
		lookup:   lookup,
		resolver: resolver,
		settings: settings,
	}
}

// Run executes one pass: load and validate the domain list, group by
// apex, gate each group on DNS, issue certificates, then validate and
// reload nginx. Any issuance or reload failure aborts the pass.
func (p *Provisioner) Run(ctx context.Context) error {
	src, err := p.loader.Load()
	if err != nil {
		return err
	}

	domains, err := domain.Clean(src.Domains)
	if err != nil {
		return err
	}
	logger.Info("loaded domains (%d): %s", len(domains), strings.Join(domains, " "))

	groups := domain.GroupByApex(domains)
	logger.Info("group count: %d", len(groups))
	for _, g := range groups {
		logger.Info("group %s => %s", g.Apex, strings.Join(g.Names, ","))
	}

	publicIP := ""
	if p.settings.CheckARecord {
		publicIP, err = p.lookup.PublicIPv4(ctx)
		if err != nil {
			// Every group will fail its gate against an empty
			// address; the run itself continues so the skips are
			// visible per group.
			logger.Warn("public IPv4 lookup failed: %v", err)
			publicIP = ""
		} else {
			logger.Info("public IPv4: %s", publicIP)
		}
	}

	for _, g := range groups {
		if err := p.provisionGroup(ctx, g, publicIP); err != nil {
			return err
		}
	}

	logger.Info("validating and reloading nginx")
	if err := p.server.Test(); err != nil {
		return err
	}
	return p.server.Reload()
}

// provisionGroup handles one apex group. Skips are logged and return
// nil; only external command failures propagate.
func (p *Provisioner) provisionGroup(ctx context.Context, g domain.Group, publicIP string) error {
	if len(g.Names) == 0 {
		logger.Warn("%s: no names in list, skip", g.Apex)
		return nil
	}

	if p.settings.CheckARecord && !p.dnsGatePasses(ctx, g.Apex, publicIP) {
		return nil
	}

	if p.settings.Staging {
		name := ssl.StagingName(g.Apex)
		if p.store.Exists(name) {
			logger.Info("[STAGING] skip %s (exists)", name)
		} else {
			logger.Info("[STAGING] requesting cert: %s (%s)", name, strings.Join(g.Names, " "))
			err := p.client.Issue(ssl.Request{
				CertName: name,
				Names:    g.Names,
				Staging:  true,
				Email:    p.settings.Email,
			})
			if err != nil {
				return err
			}
		}
	}

	if p.settings.Production {
		logger.Info("[PROD] requesting cert: %s (%s)", g.Apex, strings.Join(g.Names, " "))
		err := p.client.Issue(ssl.Request{
			CertName: g.Apex,
			Names:    g.Names,
			Email:    p.settings.Email,
			Force:    p.settings.ForceProduction,
		})
		if err != nil {
			return err
		}
	} else {
		logger.Info("[PROD] skip %s (production issuance disabled)", g.Apex)
	}

	return nil
}

// dnsGatePasses verifies the apex A record points at this host's
// public IP. Any resolution failure, empty answer, missing public IP,
// or mismatch fails the gate.
func (p *Provisioner) dnsGatePasses(ctx context.Context, apex, publicIP string) bool {
	resolved, err := p.resolver.ResolveA(ctx, apex)
	if err != nil {
		logger.Warn("SKIP %s: A record lookup failed: %v", apex, err)
		return false
	}

	logger.Info("DNS A check apex=%s resolved_A=%q public_ipv4=%q", apex, resolved, publicIP)

	if resolved == "" || publicIP == "" || resolved != publicIP {
		logger.Warn("SKIP %s: A record(%s) != public IPv4(%s)", apex, resolved, publicIP)
		return false
	}
	return true
}

// EnsureDirs creates the state directories shared with the nginx and
// certbot containers.
func EnsureDirs(cfg *config.Config) error {
	for _, dir := range cfg.DataDirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
