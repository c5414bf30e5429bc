// Package shared holds helpers used by more than one package.
//
// testutil provides a capturing slog handler and measurement fixtures for
// tests. It must not be imported by non-test code.
package shared
