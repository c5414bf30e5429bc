// Package config provides centralized configuration management for tunnelcli.
// It loads the run constants of a reduction (airfoil chord, air properties,
// tunnel geometry, blockage constant) together with batch, server, logging
// and telemetry settings.
//
// # Configuration Sources
//
// Configuration is resolved in order of increasing precedence:
//
//  1. Built-in defaults (Default)
//  2. YAML file (tunnel.yaml, configs/tunnel.yaml, or an explicit path)
//  3. Environment variables with the TUNNEL_ prefix
//  4. Command-line flags (applied by cmd/tunnelcli)
//
// # Environment Variables
//
//	TUNNEL_PHYSICS_CHORD=0.45
//	TUNNEL_PHYSICS_TUNNEL_AREA=4.5
//	TUNNEL_PHYSICS_GEOMETRY=tabulated
//	TUNNEL_RUN_WORKERS=8
//	TUNNEL_LOGGING_LEVEL=debug
//
// # Validation
//
// Every section carries validator tags; Load and Validate reject
// non-positive chords, densities, viscosities, tunnel areas and spans, and
// unknown geometry strategies or export formats.
package config
