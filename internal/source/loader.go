// Package source locates and parses the two externally edited input
// files: the domain list and the proxy-pass target.
//
// Both files share one line format: UTF-8 text, one value per line,
// blank lines and #-comments ignored. Each file may live at several
// well-known locations; the first existing non-empty file wins. The
// resolved paths are reported back so the watcher knows what to
// re-stat.
package source

import (
	"os"
	"strings"

	"github.com/zionladder/frontweb/internal/errors"
	"github.com/zionladder/frontweb/internal/logger"
)

// Sources is the parsed result of one load: the ordered domain list,
// the single proxy target, and the paths they were read from.
type Sources struct {
	Domains    []string
	ProxyPass  string
	DomainPath string
	ProxyPath  string
}

// Loader resolves and parses the source files.
type Loader struct {
	domainCandidates []string
	proxyCandidates  []string
}

// NewLoader creates a Loader probing the given candidate paths in order.
func NewLoader(domainCandidates, proxyCandidates []string) *Loader {
	return &Loader{
		domainCandidates: domainCandidates,
		proxyCandidates:  proxyCandidates,
	}
}

// Load resolves both source files and parses them. Domains are raw at
// this stage: comment and blank lines are stripped but no syntax
// validation or de-duplication happens here (the domain package owns
// that for the provisioning path).
func (l *Loader) Load() (*Sources, error) {
	domainPath := firstExisting(l.domainCandidates)
	if domainPath == "" {
		return nil, errors.SourceNotFound("domain.list", l.domainCandidates)
	}

	proxyPath := firstExisting(l.proxyCandidates)
	if proxyPath == "" {
		return nil, errors.SourceNotFound("proxy_pass", l.proxyCandidates)
	}

	domains, err := readLines(domainPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to read domain list", err)
	}
	if len(domains) == 0 {
		return nil, errors.ErrNoDomains
	}

	proxyLines, err := readLines(proxyPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to read proxy_pass", err)
	}
	if len(proxyLines) == 0 {
		return nil, errors.ErrNoProxyTarget
	}
	if len(proxyLines) > 1 {
		logger.Debug("proxy_pass %s has %d entries, using the first", proxyPath, len(proxyLines))
	}

	return &Sources{
		Domains:    domains,
		ProxyPass:  proxyLines[0],
		DomainPath: domainPath,
		ProxyPath:  proxyPath,
	}, nil
}

// firstExisting returns the first path that is an existing, non-empty
// regular file, or "" when none qualifies.
func firstExisting(paths []string) string {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() || info.Size() == 0 {
			continue
		}
		return p
	}
	return ""
}

// readLines reads a source file and returns its meaningful lines:
// whitespace-trimmed, CR stripped, blank and #-comment lines skipped.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(strings.ReplaceAll(raw, "\r", ""))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
