// Package pkghttp provides the outgoing HTTP client shared by adapters that
// call third-party APIs. It is a thin layer over resty that sets a timeout,
// default headers and correlation ID propagation.
package pkghttp
