// Package domain defines the core business entities for fleetdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - User: A customer account
//   - Vehicle: A vehicle owned by a user
//   - Subscription: A vehicle's plan and its lifecycle status
//   - AppSettings: Application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
