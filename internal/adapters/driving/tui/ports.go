// Package tui provides the interactive terminal console for fleetdesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the console.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Users lists and loads users.
	Users driving.UserService

	// Vehicles lists vehicles, optionally by owner.
	Vehicles driving.VehicleService

	// Subscriptions lists and mutates subscriptions.
	Subscriptions driving.SubscriptionService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// Changes signals that the backing store changed outside the console.
	// Optional; nil disables live reload.
	Changes <-chan struct{}
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	users driving.UserService,
	vehicles driving.VehicleService,
	subscriptions driving.SubscriptionService,
) *Ports {
	return &Ports{
		Users:         users,
		Vehicles:      vehicles,
		Subscriptions: subscriptions,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Users == nil {
		return ErrMissingUserService
	}
	if p.Vehicles == nil {
		return ErrMissingVehicleService
	}
	if p.Subscriptions == nil {
		return ErrMissingSubscriptionService
	}
	return nil
}
