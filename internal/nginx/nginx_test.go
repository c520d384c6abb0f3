package nginx

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/zionladder/frontweb/internal/compose"
	"github.com/zionladder/frontweb/internal/executor"
)

func newTestNginx(t *testing.T, mock *executor.MockExecutor) *Nginx {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "nginx-sites")
	return New(dir, "00-front-web-http.conf", compose.NewWithExecutor(".", mock))
}

func TestWriteVhost(t *testing.T) {
	t.Run("writes the file", func(t *testing.T) {
		n := newTestNginx(t, &executor.MockExecutor{})

		if err := n.WriteVhost("server { listen 80; }"); err != nil {
			t.Fatalf("WriteVhost failed: %v", err)
		}

		content, err := os.ReadFile(n.VhostPath())
		if err != nil {
			t.Fatalf("failed to read vhost: %v", err)
		}
		if string(content) != "server { listen 80; }" {
			t.Errorf("content mismatch: %s", content)
		}
	})

	t.Run("leaves no temporary file behind", func(t *testing.T) {
		n := newTestNginx(t, &executor.MockExecutor{})

		if err := n.WriteVhost("server {}"); err != nil {
			t.Fatalf("WriteVhost failed: %v", err)
		}

		if _, err := os.Stat(n.VhostPath() + ".tmp"); !os.IsNotExist(err) {
			t.Error("temporary file should have been renamed away")
		}
	})

	t.Run("overwrite replaces complete content", func(t *testing.T) {
		n := newTestNginx(t, &executor.MockExecutor{})

		if err := n.WriteVhost("old config"); err != nil {
			t.Fatalf("WriteVhost failed: %v", err)
		}
		if err := n.WriteVhost("new config"); err != nil {
			t.Fatalf("WriteVhost failed: %v", err)
		}

		content, _ := os.ReadFile(n.VhostPath())
		if string(content) != "new config" {
			t.Errorf("expected replaced content, got %s", content)
		}
	})

	t.Run("interrupted temp write leaves target untouched", func(t *testing.T) {
		n := newTestNginx(t, &executor.MockExecutor{})

		if err := n.WriteVhost("last good config"); err != nil {
			t.Fatalf("WriteVhost failed: %v", err)
		}

		// Simulate a writer dying after producing a partial temp file:
		// the final path must still hold the previous document.
		tmp := n.VhostPath() + ".tmp"
		if err := os.WriteFile(tmp, []byte("partial gar"), 0644); err != nil {
			t.Fatalf("failed to plant temp file: %v", err)
		}

		content, err := os.ReadFile(n.VhostPath())
		if err != nil {
			t.Fatalf("failed to read vhost: %v", err)
		}
		if string(content) != "last good config" {
			t.Errorf("target corrupted by interrupted write: %s", content)
		}
	})
}

func TestTestAndReload(t *testing.T) {
	t.Run("Test runs nginx -t in the container", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		n := newTestNginx(t, mock)

		if err := n.Test(); err != nil {
			t.Fatalf("Test failed: %v", err)
		}

		want := []string{"compose", "exec", "nginx", "nginx", "-t"}
		if !reflect.DeepEqual(mock.Calls[0].Args, want) {
			t.Errorf("expected %v, got %v", want, mock.Calls[0].Args)
		}
	})

	t.Run("Reload runs nginx -s reload", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		n := newTestNginx(t, mock)

		if err := n.Reload(); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}

		want := []string{"compose", "exec", "nginx", "nginx", "-s", "reload"}
		if !reflect.DeepEqual(mock.Calls[0].Args, want) {
			t.Errorf("expected %v, got %v", want, mock.Calls[0].Args)
		}
	})

	t.Run("Test failure propagates", func(t *testing.T) {
		mock := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("nginx: configuration file test failed"), errors.New("exit status 1")
			},
		}
		n := newTestNginx(t, mock)

		if err := n.Test(); err == nil {
			t.Error("expected error from failed config test")
		}
	})
}
