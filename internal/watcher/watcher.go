// Package watcher keeps the rendered vhost in sync with the source
// files.
//
// The loop is a plain poll: sleep a fixed interval, re-stat both
// source files, and re-render when either modification time moved.
// A failed reload never stops the loop or touches the previously
// rendered vhost; the last known good configuration stays active
// until the files are fixed. Only the initial load is fatal.
package watcher

import (
	"os"
	"strings"
	"time"

	"github.com/zionladder/frontweb/internal/logger"
	"github.com/zionladder/frontweb/internal/nginx"
	"github.com/zionladder/frontweb/internal/source"
	"github.com/zionladder/frontweb/internal/template"
)

// Watcher renders the vhost and re-renders it on source changes.
type Watcher struct {
	loader        *source.Loader
	vhost         *nginx.Nginx
	challengeRoot string
	interval      time.Duration

	// Baseline: last successfully applied sources and the stat times
	// they were read at. Only updated after a successful reload.
	src         *source.Sources
	domainMtime time.Time
	proxyMtime  time.Time
}

// New creates a Watcher. challengeRoot is rendered into the vhost's
// ACME challenge location.
func New(loader *source.Loader, vhost *nginx.Nginx, challengeRoot string, interval time.Duration) *Watcher {
	return &Watcher{
		loader:        loader,
		vhost:         vhost,
		challengeRoot: challengeRoot,
		interval:      interval,
	}
}

// Start performs the initial load and render and records the baseline.
// An error here is fatal: without a first good configuration there is
// nothing to fall back to.
func (w *Watcher) Start() error {
	src, err := w.loader.Load()
	if err != nil {
		return err
	}
	if err := w.render(src); err != nil {
		return err
	}

	w.adopt(src)

	logger.Info("loaded domain list from: %s", src.DomainPath)
	logger.Info("loaded proxy_pass from: %s", src.ProxyPath)
	logger.Info("active domains (%d): %s", len(src.Domains), strings.Join(src.Domains, ", "))
	logger.Info("proxy_pass: %s", src.ProxyPass)
	logger.Info("wrote vhost to %s (reload nginx to apply)", w.vhost.VhostPath())

	return nil
}

// Run starts the watcher and polls until stop is closed. A nil stop
// channel runs until the process is terminated.
func (w *Watcher) Run(stop <-chan struct{}) error {
	if err := w.Start(); err != nil {
		return err
	}

	for {
		select {
		case <-stop:
			return nil
		case <-time.After(w.interval):
			w.poll()
		}
	}
}

// poll is one loop iteration: re-stat the sources and attempt a
// reload when either changed.
func (w *Watcher) poll() {
	newDomain := mtime(w.src.DomainPath)
	newProxy := mtime(w.src.ProxyPath)

	if newDomain.Equal(w.domainMtime) && newProxy.Equal(w.proxyMtime) {
		return
	}

	src, err := w.loader.Load()
	if err != nil {
		logger.Warn("config reload failed; keeping last good config: %v", err)
		return
	}
	if err := w.render(src); err != nil {
		logger.Warn("config reload failed; keeping last good config: %v", err)
		return
	}

	w.adopt(src)

	logger.Info("config changed; reloaded")
	logger.Info("  domains (%d): %s", len(src.Domains), strings.Join(src.Domains, ", "))
	logger.Info("  proxy_pass: %s", src.ProxyPass)
	logger.Info("wrote vhost to %s (reload nginx to apply)", w.vhost.VhostPath())
}

// render writes the vhost for src atomically.
func (w *Watcher) render(src *source.Sources) error {
	conf, err := template.RenderHTTP(template.VhostData{
		Domains:       src.Domains,
		ProxyPass:     src.ProxyPass,
		ChallengeRoot: w.challengeRoot,
	})
	if err != nil {
		return err
	}
	return w.vhost.WriteVhost(conf)
}

// adopt records src and its current stat times as the new baseline.
func (w *Watcher) adopt(src *source.Sources) {
	w.src = src
	w.domainMtime = mtime(src.DomainPath)
	w.proxyMtime = mtime(src.ProxyPath)
}

// mtime returns a file's modification time, or the zero time when the
// file cannot be stat'ed. A vanished file thus reads as a change.
func mtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
