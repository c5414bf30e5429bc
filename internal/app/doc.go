// Package app wires configuration, telemetry, services and the HTTP router
// into a runnable server.
//
// # Initialization Flow
//
//  1. Telemetry providers from the telemetry config
//  2. Reduction metrics on the provider's meter
//  3. Reduction and health services with the run constants
//  4. Router and http.Server
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests within the shutdown timeout and flushes
// telemetry.
package app
