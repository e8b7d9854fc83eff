// Package pkgrouter wraps HTTP routing and common middleware used by the API.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON encoding, error mapping, logging, recovery, request metrics and
// correlation ID propagation. Payloads are written bare; errors are written
// as {"error": message}.
package pkgrouter
