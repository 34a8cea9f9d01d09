// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - UserStore: User persistence
//   - VehicleStore: Vehicle persistence
//   - SubscriptionStore: Subscription persistence
//   - ConfigStore: Application configuration
//
// Every store has an in-memory, a SQLite and a PostgreSQL implementation.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
