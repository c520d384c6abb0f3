// Package domain validates hostnames and groups them by apex for
// shared-certificate issuance.
package domain

import (
	"regexp"
	"sort"
	"strings"

	"github.com/zionladder/frontweb/internal/errors"
	"github.com/zionladder/frontweb/internal/logger"
)

// hostnamePattern bounds a hostname with alphanumerics and allows
// dots and hyphens in between. A valid domain additionally needs at
// least one dot.
var hostnamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.-]*[A-Za-z0-9]$`)

// wwwPrefix is the only prefix stripped when computing an apex.
// Deeper subdomains are their own apex.
const wwwPrefix = "www."

// Group is a set of certificate names sharing one apex domain.
// Names preserves the apex-then-www order relied on by the rendered
// server_name directive and the certbot -d argument order.
type Group struct {
	Apex  string   `json:"apex"`
	Names []string `json:"names"`
}

// IsValid reports whether d is an acceptable hostname.
func IsValid(d string) bool {
	return strings.Contains(d, ".") && hostnamePattern.MatchString(d)
}

// Apex returns the apex domain for d: the literal www. prefix
// stripped when present, d itself otherwise.
func Apex(d string) string {
	if strings.HasPrefix(d, wwwPrefix) {
		return strings.TrimPrefix(d, wwwPrefix)
	}
	return d
}

// Dedupe removes exact-string duplicates, keeping the first
// occurrence and the original order.
func Dedupe(domains []string) []string {
	seen := make(map[string]struct{}, len(domains))
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Clean de-duplicates and validates a raw domain list. Invalid
// entries are dropped with a warning; an empty result is an error
// because nothing can be provisioned from it.
func Clean(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, d := range Dedupe(raw) {
		if !IsValid(d) {
			logger.Warn("invalid domain skipped: %s", d)
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, errors.ErrNoDomains
	}
	return out, nil
}

// GroupByApex groups validated domains by apex. Each group lists the
// apex first when literally present in domains, then the www. form
// when literally present. Groups are ordered lexicographically by
// apex, independent of input order.
func GroupByApex(domains []string) []Group {
	present := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		present[d] = struct{}{}
	}

	apexes := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		apexes[Apex(d)] = struct{}{}
	}

	sorted := make([]string, 0, len(apexes))
	for apex := range apexes {
		sorted = append(sorted, apex)
	}
	sort.Strings(sorted)

	groups := make([]Group, 0, len(sorted))
	for _, apex := range sorted {
		var names []string
		if _, ok := present[apex]; ok {
			names = append(names, apex)
		}
		www := wwwPrefix + apex
		if _, ok := present[www]; ok {
			names = append(names, www)
		}
		groups = append(groups, Group{Apex: apex, Names: names})
	}
	return groups
}
