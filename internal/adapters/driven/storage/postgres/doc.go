// Package postgres provides Postgres-backed implementations of the fleet
// stores on a pgx connection pool. The schema mirrors the SQLite store and
// is migrated on open.
package postgres
