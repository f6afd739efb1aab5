// Package memory is an in-memory collection adapter, used by tests and the
// CLI to run list queries without a backing store.
package memory
