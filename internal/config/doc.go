// Package config holds the tool settings and the provisioning toggles.
//
// Two configuration surfaces exist:
//
//   - An optional YAML settings file (frontweb.yaml) overriding the
//     built-in paths and poll interval. Absent file means defaults;
//     the zero-config behavior is the documented container layout.
//   - Environment variables for the provisioning orchestrator
//     (CERTBOT_EMAIL, DO_STAGING, DO_PROD, FORCE_PROD, CHECK_A_RECORD,
//     CHECK_AAAA_RECORD), optionally seeded from a .env file that
//     never overrides variables already set in the environment.
//
// The domain list and proxy target themselves are not configuration:
// they are externally edited source files consumed by the source
// package.
package config
