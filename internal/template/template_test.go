package template

import (
	"strings"
	"testing"
)

func TestRenderHTTP(t *testing.T) {
	data := VhostData{
		Domains:       []string{"a.com", "www.a.com"},
		ProxyPass:     "http://x:80",
		ChallengeRoot: "/var/www/certbot",
	}

	conf, err := RenderHTTP(data)
	if err != nil {
		t.Fatalf("RenderHTTP failed: %v", err)
	}

	t.Run("server_name preserves input order", func(t *testing.T) {
		if !strings.Contains(conf, "server_name a.com www.a.com;") {
			t.Errorf("server_name directive wrong or missing:\n%s", conf)
		}
	})

	t.Run("listens on the plaintext port", func(t *testing.T) {
		if !strings.Contains(conf, "listen 80;") {
			t.Errorf("listen directive missing:\n%s", conf)
		}
	})

	t.Run("acme challenge location", func(t *testing.T) {
		if !strings.Contains(conf, "location /.well-known/acme-challenge/") {
			t.Errorf("challenge location missing:\n%s", conf)
		}
		if !strings.Contains(conf, "root /var/www/certbot;") {
			t.Errorf("challenge root missing:\n%s", conf)
		}
	})

	t.Run("proxy directives", func(t *testing.T) {
		for _, want := range []string{
			"proxy_pass http://x:80;",
			"proxy_set_header Host $http_host;",
			"proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;",
			"proxy_set_header X-Real-IP $remote_addr;",
			"proxy_http_version 1.1;",
		} {
			if !strings.Contains(conf, want) {
				t.Errorf("directive %q missing:\n%s", want, conf)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again, err := RenderHTTP(data)
		if err != nil {
			t.Fatalf("RenderHTTP failed: %v", err)
		}
		if again != conf {
			t.Error("identical input must render identical output")
		}
	})
}

func TestRenderHTTPValidation(t *testing.T) {
	t.Run("no domains", func(t *testing.T) {
		_, err := RenderHTTP(VhostData{ProxyPass: "http://x:80"})
		if err == nil {
			t.Error("expected error for empty domain list")
		}
	})

	t.Run("no proxy target", func(t *testing.T) {
		_, err := RenderHTTP(VhostData{Domains: []string{"a.com"}})
		if err == nil {
			t.Error("expected error for empty proxy target")
		}
	})
}
