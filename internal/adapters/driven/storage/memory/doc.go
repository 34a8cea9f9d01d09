// Package memory provides in-memory implementations of the driven store
// ports. They back the "memory" storage driver and the service tests.
package memory
