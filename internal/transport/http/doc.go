// Package http exposes the reduction service over HTTP.
//
// Handlers stay thin: they decode query overrides, hand the measurement to
// the reduction service and render the result. Every error goes through
// the shared ErrorHandler and is returned as an RFC 7807 problem.
//
// # Routes
//
//	POST /api/v1/reduce          reduce one measurement file
//	GET  /api/v1/geometry        reference areas and blockage of the model
//	GET  /api/health             liveness summary
//	GET  /api/health/ready       readiness of the reducer and report storage
//	GET  /api/health/live        runtime details
//	GET  /api/version            build information
//	GET  /metrics                Prometheus scrape endpoint
//
// POST /api/v1/reduce accepts the file as the raw body or as the "file"
// field of a multipart form. Query parameters chord, density, viscosity,
// tunnel_area, span and geometry override the run constants for that
// request only; format=csv returns the Cp distribution as CSV.
package http
