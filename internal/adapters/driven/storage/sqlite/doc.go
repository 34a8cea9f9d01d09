// Package sqlite provides SQLite-backed implementations of the fleet stores.
//
// A single Store owns the database file (fleet.db inside the data
// directory) and hands out UserStore, VehicleStore and SubscriptionStore
// views over it. Migrations are embedded and applied on open.
package sqlite
