package tui

import "errors"

// ErrMissingUserService is returned when the user service is not provided.
var ErrMissingUserService = errors.New("tui: user service is required")

// ErrMissingVehicleService is returned when the vehicle service is not provided.
var ErrMissingVehicleService = errors.New("tui: vehicle service is required")

// ErrMissingSubscriptionService is returned when the subscription service is not provided.
var ErrMissingSubscriptionService = errors.New("tui: subscription service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
