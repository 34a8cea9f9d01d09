// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never talk to a database directly; they only see the
// store interfaces in internal/core/ports/driven.
package services
