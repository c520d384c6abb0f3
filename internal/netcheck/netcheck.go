// Package netcheck verifies that a domain actually points at this
// host before any certificate is requested for it.
//
// Two collaborators are involved: an HTTPS IP-echo service telling us
// the host's public IPv4 address, and the system DNS resolver telling
// us where a domain's A record points. Both sit behind small
// interfaces so the provisioner can be tested without a network.
package netcheck

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// IPLookup determines the host's public IPv4 address.
type IPLookup interface {
	PublicIPv4(ctx context.Context) (string, error)
}

// Resolver resolves a host's first IPv4 address.
type Resolver interface {
	ResolveA(ctx context.Context, host string) (string, error)
}

// DefaultEchoURL is the IP-echo service queried when none is configured.
const DefaultEchoURL = "https://ifconfig.me"

// HTTPIPLookup queries an IP-echo service returning a bare IPv4
// address as plaintext.
type HTTPIPLookup struct {
	URL    string
	Client *http.Client
}

// NewHTTPIPLookup creates a lookup against the given echo service URL.
func NewHTTPIPLookup(url string) *HTTPIPLookup {
	if url == "" {
		url = DefaultEchoURL
	}
	return &HTTPIPLookup{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// PublicIPv4 fetches and validates the echoed address.
func (l *HTTPIPLookup) PublicIPv4(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return "", err
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("public IP lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("public IP lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", fmt.Errorf("public IP lookup read failed: %w", err)
	}

	addr := strings.TrimSpace(string(body))
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return "", fmt.Errorf("public IP lookup returned %q, not an IPv4 address", addr)
	}

	return ip.To4().String(), nil
}

// NetResolver resolves via the standard system resolver.
type NetResolver struct {
	resolver *net.Resolver
}

// NewNetResolver creates a resolver using the system DNS configuration.
func NewNetResolver() *NetResolver {
	return &NetResolver{resolver: net.DefaultResolver}
}

// ResolveA returns the first IPv4 address of host.
func (r *NetResolver) ResolveA(ctx context.Context, host string) (string, error) {
	ips, err := r.resolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("no A record for %s", host)
	}
	return ips[0].To4().String(), nil
}
