// Package template renders the nginx virtual-host configuration from
// embedded templates.
package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// VhostData contains data for rendering the HTTP vhost template.
type VhostData struct {
	// Domains become the server_name directive, space-joined in the
	// given order. Order is part of the rendered artifact.
	Domains []string

	// ProxyPass is the upstream the catch-all location forwards to.
	ProxyPass string

	// ChallengeRoot serves the ACME HTTP-01 challenge files.
	ChallengeRoot string
}

// RenderHTTP renders the plaintext-port vhost for the given domains
// and upstream. Output is deterministic for identical input.
func RenderHTTP(data VhostData) (string, error) {
	if len(data.Domains) == 0 {
		return "", fmt.Errorf("no domains to render")
	}
	if data.ProxyPass == "" {
		return "", fmt.Errorf("no proxy target to render")
	}

	content, err := nginxTemplates.ReadFile(httpTemplate)
	if err != nil {
		return "", fmt.Errorf("template not found: %s", httpTemplate)
	}

	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	tmpl, err := template.New("http").Funcs(funcMap).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}
