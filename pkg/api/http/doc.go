// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Service discovery on /
//   - Head and tail views of the list
//   - Health checks
//   - Prometheus metrics
package http
