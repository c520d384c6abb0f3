// Package errors provides standardized error types for the frontweb tool.
//
// ProvisionError is the primary error type, carrying an error code for
// programmatic handling, the domain or apex involved when applicable,
// and an optional wrapped cause. Fatal startup conditions (missing
// source files, zero valid domains) have pre-defined sentinels so the
// watcher can distinguish a recoverable reload failure from a bug.
//
// Use errors.Is for sentinel comparison:
//
//	if errors.Is(err, errors.ErrNoDomains) {
//	    // keep the last good config
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeConfig     ErrorCode = "CONFIG"     // Source/settings file error
	ErrCodeValidation ErrorCode = "VALIDATION" // Domain validation failed
	ErrCodeDNS        ErrorCode = "DNS"        // DNS verification failed
	ErrCodeSSL        ErrorCode = "SSL"        // Certificate issuance error
	ErrCodeNginx      ErrorCode = "NGINX"      // Proxy config/reload error
	ErrCodeCompose    ErrorCode = "COMPOSE"    // Container orchestration error
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal/unexpected error
)

// ProvisionError represents a structured error with context about the operation.
type ProvisionError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain or apex involved (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *ProvisionError) Error() string {
	if e.Domain != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Domain, e.Message, e.Err)
	}
	if e.Domain != "" {
		return fmt.Sprintf("%s: %s", e.Domain, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code and message so sentinels match
// their derived instances.
func (e *ProvisionError) Is(target error) bool {
	t, ok := target.(*ProvisionError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Message == "" || e.Message == t.Message)
}

// Sentinel errors for common scenarios.
var (
	// ErrSourceNotFound indicates no candidate source file could be located.
	ErrSourceNotFound = &ProvisionError{Code: ErrCodeConfig, Message: "source file not found"}

	// ErrNoDomains indicates the domain list produced zero usable domains.
	ErrNoDomains = &ProvisionError{Code: ErrCodeValidation, Message: "no valid domains"}

	// ErrNoProxyTarget indicates the proxy-pass file had no usable line.
	ErrNoProxyTarget = &ProvisionError{Code: ErrCodeConfig, Message: "no valid proxy_pass line"}

	// ErrInvalidDomain indicates a hostname failed syntax validation.
	ErrInvalidDomain = &ProvisionError{Code: ErrCodeValidation, Message: "invalid domain"}

	// ErrDNSMismatch indicates the apex A record does not point at this host.
	ErrDNSMismatch = &ProvisionError{Code: ErrCodeDNS, Message: "A record does not match public IP"}
)

// SourceNotFound creates an error listing the candidate paths that were probed.
func SourceNotFound(name string, candidates []string) error {
	return &ProvisionError{
		Code:    ErrCodeConfig,
		Message: "source file not found",
		Err:     fmt.Errorf("%s: expected one of %v", name, candidates),
	}
}

// InvalidDomain creates a validation error for a single hostname.
func InvalidDomain(domain string) error {
	return &ProvisionError{
		Code:    ErrCodeValidation,
		Message: "invalid domain",
		Domain:  domain,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &ProvisionError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapDomain creates an error with domain context and underlying error.
func WrapDomain(code ErrorCode, domain, msg string, err error) error {
	return &ProvisionError{
		Code:    code,
		Message: msg,
		Domain:  domain,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
