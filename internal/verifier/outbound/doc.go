// Package outbound holds the adapters that call third-party services on
// behalf of the verifier module.
package outbound
