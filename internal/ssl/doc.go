// Package ssl manages certificate issuance through the external
// certbot client.
//
// Certbot runs as a one-off container in the compose stack; this
// package only builds its argument vector and checks for existing
// certificate records on the shared state volume. TLS material is
// never parsed or touched.
package ssl
