package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zionladder/frontweb/internal/config"
	"github.com/zionladder/frontweb/internal/source"
	"github.com/zionladder/frontweb/internal/ssl"
)

// Test fakes for the injected collaborators.

type fakeStore struct {
	existing map[string]bool
}

func (f *fakeStore) Exists(name string) bool { return f.existing[name] }

type fakeClient struct {
	requests []ssl.Request
	err      error
}

func (f *fakeClient) Issue(req ssl.Request) error {
	f.requests = append(f.requests, req)
	return f.err
}

type fakeServer struct {
	tested   bool
	reloaded bool
	testErr  error
}

func (f *fakeServer) Test() error {
	f.tested = true
	return f.testErr
}

func (f *fakeServer) Reload() error {
	f.reloaded = true
	return nil
}

type fakeLookup struct {
	ip  string
	err error
}

func (f *fakeLookup) PublicIPv4(ctx context.Context) (string, error) { return f.ip, f.err }

type fakeResolver struct {
	answers map[string]string
	err     error
}

func (f *fakeResolver) ResolveA(ctx context.Context, host string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.answers[host], nil
}

type harness struct {
	store    *fakeStore
	client   *fakeClient
	server   *fakeServer
	lookup   *fakeLookup
	resolver *fakeResolver
	settings config.ProvisionSettings
}

func newHarness() *harness {
	return &harness{
		store:  &fakeStore{existing: map[string]bool{}},
		client: &fakeClient{},
		server: &fakeServer{},
		lookup: &fakeLookup{ip: "1.2.3.4"},
		resolver: &fakeResolver{answers: map[string]string{
			"a.com": "1.2.3.4",
			"b.com": "1.2.3.4",
		}},
		settings: config.ProvisionSettings{
			Staging:      true,
			CheckARecord: true,
		},
	}
}

func (h *harness) provisioner(t *testing.T, domains string) *Provisioner {
	t.Helper()
	dir := t.TempDir()
	domainPath := filepath.Join(dir, "domain.list")
	proxyPath := filepath.Join(dir, "proxy_pass")
	if err := os.WriteFile(domainPath, []byte(domains), 0644); err != nil {
		t.Fatalf("failed to write domain list: %v", err)
	}
	if err := os.WriteFile(proxyPath, []byte("http://backend:8080\n"), 0644); err != nil {
		t.Fatalf("failed to write proxy_pass: %v", err)
	}

	loader := source.NewLoader([]string{domainPath}, []string{proxyPath})
	return New(loader, h.store, h.client, h.server, h.lookup, h.resolver, h.settings)
}

func TestProvisionRun(t *testing.T) {
	t.Run("issues staging certs per group and reloads", func(t *testing.T) {
		h := newHarness()
		p := h.provisioner(t, "a.com\nwww.a.com\nb.com\n")

		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if len(h.client.requests) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(h.client.requests))
		}
		first := h.client.requests[0]
		if first.CertName != "a.com-staging" || !first.Staging {
			t.Errorf("unexpected first request: %+v", first)
		}
		if len(first.Names) != 2 || first.Names[0] != "a.com" || first.Names[1] != "www.a.com" {
			t.Errorf("unexpected member order: %v", first.Names)
		}
		if h.client.requests[1].CertName != "b.com-staging" {
			t.Errorf("groups must be processed in apex order: %+v", h.client.requests[1])
		}
		if !h.server.tested || !h.server.reloaded {
			t.Error("nginx must be validated and reloaded after the group loop")
		}
	})

	t.Run("existing staging cert is skipped", func(t *testing.T) {
		h := newHarness()
		h.store.existing["a.com-staging"] = true
		p := h.provisioner(t, "a.com\n")

		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if len(h.client.requests) != 0 {
			t.Errorf("expected no requests for existing cert, got %v", h.client.requests)
		}

		// A second pass is equally a no-op.
		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("second Run failed: %v", err)
		}
		if len(h.client.requests) != 0 {
			t.Errorf("staging issuance must happen at most once, got %v", h.client.requests)
		}
	})

	t.Run("dns mismatch skips the group", func(t *testing.T) {
		h := newHarness()
		h.resolver.answers["a.com"] = "5.6.7.8"
		p := h.provisioner(t, "a.com\nb.com\n")

		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if len(h.client.requests) != 1 {
			t.Fatalf("expected only the matching group, got %v", h.client.requests)
		}
		if h.client.requests[0].CertName != "b.com-staging" {
			t.Errorf("wrong group issued: %+v", h.client.requests[0])
		}
	})

	t.Run("matching dns proceeds", func(t *testing.T) {
		h := newHarness()
		p := h.provisioner(t, "a.com\n")

		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if len(h.client.requests) != 1 {
			t.Errorf("expected issuance for matching group, got %v", h.client.requests)
		}
	})

	t.Run("empty resolution skips", func(t *testing.T) {
		h := newHarness()
		h.resolver.answers = map[string]string{}
		p := h.provisioner(t, "a.com\n")

		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if len(h.client.requests) != 0 {
			t.Errorf("expected no issuance, got %v", h.client.requests)
		}
	})

	t.Run("failed public ip lookup skips every group", func(t *testing.T) {
		h := newHarness()
		h.lookup.err = errors.New("echo service down")
		p := h.provisioner(t, "a.com\nb.com\n")

		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if len(h.client.requests) != 0 {
			t.Errorf("expected no issuance, got %v", h.client.requests)
		}
		if !h.server.reloaded {
			t.Error("reload still happens after a fully skipped pass")
		}
	})

	t.Run("disabled dns check issues without gating", func(t *testing.T) {
		h := newHarness()
		h.settings.CheckARecord = false
		h.resolver.err = errors.New("resolver must not be called")
		h.lookup.err = errors.New("lookup must not be called")
		p := h.provisioner(t, "a.com\n")

		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if len(h.client.requests) != 1 {
			t.Errorf("expected issuance, got %v", h.client.requests)
		}
	})

	t.Run("production issuance always invoked when enabled", func(t *testing.T) {
		h := newHarness()
		h.settings.Production = true
		h.settings.ForceProduction = true
		h.store.existing["a.com-staging"] = true
		p := h.provisioner(t, "a.com\n")

		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if len(h.client.requests) != 1 {
			t.Fatalf("expected one production request, got %v", h.client.requests)
		}
		req := h.client.requests[0]
		if req.CertName != "a.com" || req.Staging || !req.Force {
			t.Errorf("unexpected production request: %+v", req)
		}
	})

	t.Run("issuance failure aborts the pass", func(t *testing.T) {
		h := newHarness()
		h.client.err = errors.New("rate limited")
		p := h.provisioner(t, "a.com\nb.com\n")

		if err := p.Run(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if len(h.client.requests) != 1 {
			t.Errorf("pass must stop at the first failure, got %v", h.client.requests)
		}
		if h.server.reloaded {
			t.Error("nginx must not be reloaded after an aborted pass")
		}
	})

	t.Run("config test failure prevents reload", func(t *testing.T) {
		h := newHarness()
		h.server.testErr = errors.New("syntax error")
		p := h.provisioner(t, "a.com\n")

		if err := p.Run(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if h.server.reloaded {
			t.Error("reload must not run when the config test fails")
		}
	})

	t.Run("all-invalid domain list is fatal", func(t *testing.T) {
		h := newHarness()
		p := h.provisioner(t, "not a domain\nnoTLD\n")

		if err := p.Run(context.Background()); err == nil {
			t.Fatal("expected error for zero valid domains")
		}
	})
}

func TestEnsureDirs(t *testing.T) {
	cfg := config.New()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")

	if err := EnsureDirs(cfg); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}

	for _, dir := range cfg.DataDirs() {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	}
}
