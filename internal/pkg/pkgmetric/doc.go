// Package pkgmetric holds the prometheus collectors of the service.
//
// A Metrics value is created once at startup and handed to the router
// (request metrics), the verification client (upstream calls) and the bulk
// pipeline (row counts).
package pkgmetric
