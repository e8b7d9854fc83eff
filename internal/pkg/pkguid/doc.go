// Package pkguid provides helpers for generating unique identifiers.
//
// Callers depend on the StringID and NumberID interfaces rather than a
// concrete strategy:
//   - StringID is backed by UUIDv7 and names requests (correlation IDs).
//   - NumberID is backed by Snowflake and names bulk verification jobs.
package pkguid
