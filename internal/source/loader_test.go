package source

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/zionladder/frontweb/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	t.Run("parses both sources", func(t *testing.T) {
		dir := t.TempDir()
		domainPath := writeFile(t, dir, "domain.list", "# managed domains\na.com\n\nwww.a.com\r\nb.com\n")
		proxyPath := writeFile(t, dir, "proxy_pass", "# upstream\nhttp://backend:8080\nhttp://ignored:9090\n")

		loader := NewLoader([]string{domainPath}, []string{proxyPath})
		src, err := loader.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		want := []string{"a.com", "www.a.com", "b.com"}
		if !reflect.DeepEqual(src.Domains, want) {
			t.Errorf("expected %v, got %v", want, src.Domains)
		}
		if src.ProxyPass != "http://backend:8080" {
			t.Errorf("expected first proxy line, got %s", src.ProxyPass)
		}
		if src.DomainPath != domainPath || src.ProxyPath != proxyPath {
			t.Errorf("resolved paths not reported: %s %s", src.DomainPath, src.ProxyPath)
		}
	})

	t.Run("first existing non-empty candidate wins", func(t *testing.T) {
		dir := t.TempDir()
		empty := writeFile(t, dir, "empty.list", "")
		second := writeFile(t, dir, "domain.list", "a.com\n")
		proxy := writeFile(t, dir, "proxy_pass", "backend:8080\n")

		loader := NewLoader(
			[]string{filepath.Join(dir, "missing.list"), empty, second},
			[]string{proxy},
		)
		src, err := loader.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if src.DomainPath != second {
			t.Errorf("expected %s, got %s", second, src.DomainPath)
		}
	})

	t.Run("missing domain list", func(t *testing.T) {
		dir := t.TempDir()
		proxy := writeFile(t, dir, "proxy_pass", "backend:8080\n")

		loader := NewLoader([]string{filepath.Join(dir, "nope")}, []string{proxy})
		_, err := loader.Load()
		if !errors.Is(err, errors.ErrSourceNotFound) {
			t.Errorf("expected ErrSourceNotFound, got %v", err)
		}
	})

	t.Run("domain list with only comments", func(t *testing.T) {
		dir := t.TempDir()
		domains := writeFile(t, dir, "domain.list", "# one\n  # two\n\n")
		proxy := writeFile(t, dir, "proxy_pass", "backend:8080\n")

		loader := NewLoader([]string{domains}, []string{proxy})
		_, err := loader.Load()
		if !errors.Is(err, errors.ErrNoDomains) {
			t.Errorf("expected ErrNoDomains, got %v", err)
		}
	})

	t.Run("proxy file with no usable line", func(t *testing.T) {
		dir := t.TempDir()
		domains := writeFile(t, dir, "domain.list", "a.com\n")
		proxy := writeFile(t, dir, "proxy_pass", "# commented out\n")

		loader := NewLoader([]string{domains}, []string{proxy})
		_, err := loader.Load()
		if !errors.Is(err, errors.ErrNoProxyTarget) {
			t.Errorf("expected ErrNoProxyTarget, got %v", err)
		}
	})

	t.Run("parsing is idempotent", func(t *testing.T) {
		dir := t.TempDir()
		domains := writeFile(t, dir, "domain.list", "a.com\nb.com\n")
		proxy := writeFile(t, dir, "proxy_pass", "backend:8080\n")

		loader := NewLoader([]string{domains}, []string{proxy})
		first, err := loader.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		second, err := loader.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("re-parsing identical files differed: %+v vs %+v", first, second)
		}
	})
}

func TestFirstExistingSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "domain.list")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if got := firstExisting([]string{sub}); got != "" {
		t.Errorf("directories must not qualify, got %s", got)
	}
}
