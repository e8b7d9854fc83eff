// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// Handlers and use cases return *Error values that carry a user-facing
// message, a type and a code. The router maps the code to an HTTP status and
// writes {"error": message}; anything else becomes a 500.
package pkgerror
