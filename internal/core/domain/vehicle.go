package domain

import (
	"fmt"
	"strings"
)

// Vehicle is a vehicle registered to a user.
type Vehicle struct {
	ID           string `json:"id" yaml:"id"`
	LicensePlate string `json:"licensePlate" yaml:"licensePlate"`
	Make         string `json:"make" yaml:"make"`
	Model        string `json:"model" yaml:"model"`
	Year         int    `json:"year" yaml:"year"`
	Color        string `json:"color" yaml:"color"`
	UserID       string `json:"userId" yaml:"userId"`
}

// VehicleTitle composes the display title of a vehicle, e.g.
// "2019 Toyota Corolla (ABC-1234)". The same vehicle always yields the same
// title; table filters match against it.
func VehicleTitle(v Vehicle) string {
	parts := make([]string, 0, 3)
	if v.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", v.Year))
	}
	if v.Make != "" {
		parts = append(parts, v.Make)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	title := strings.Join(parts, " ")
	if v.LicensePlate == "" {
		return title
	}
	if title == "" {
		return v.LicensePlate
	}
	return fmt.Sprintf("%s (%s)", title, v.LicensePlate)
}

// Title returns VehicleTitle(v).
func (v Vehicle) Title() string {
	return VehicleTitle(v)
}

// DetailedVehicle is a vehicle with its owner and current subscription.
type DetailedVehicle struct {
	Vehicle      `json:",inline" yaml:",inline"`
	Owner        User          `json:"owner" yaml:"owner"`
	Subscription *Subscription `json:"subscription,omitempty" yaml:"subscription,omitempty"`
}
