// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and logs
// panics so that background work does not crash the process silently. The
// bulk verification pipeline uses one Manager per job as its worker pool.
package pkgroutine
