package template

import "embed"

//go:embed nginx/*.tmpl
var nginxTemplates embed.FS

// httpTemplate is the plaintext-listener vhost. HTTPS vhosts are a
// later addition; the ACME challenge location is already carved out
// so adding them will not touch this template's server block.
const httpTemplate = "nginx/http.tmpl"
