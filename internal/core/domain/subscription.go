package domain

import (
	"fmt"
	"time"
)

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

// Known subscription statuses, in sort order.
const (
	StatusActive      SubscriptionStatus = "active"
	StatusTransferred SubscriptionStatus = "transferred"
	StatusOverdue     SubscriptionStatus = "overdue"
	StatusCancelled   SubscriptionStatus = "cancelled"
)

// Statuses lists every known status, healthiest first.
func Statuses() []SubscriptionStatus {
	return []SubscriptionStatus{StatusActive, StatusTransferred, StatusOverdue, StatusCancelled}
}

// StatusRank returns the position of s in the fixed order
// active(1) < transferred(2) < overdue(3) < cancelled(4).
// Unknown statuses return ErrUnknownStatus and rank after every known one.
func StatusRank(s SubscriptionStatus) (int, error) {
	switch s {
	case StatusActive:
		return 1, nil
	case StatusTransferred:
		return 2, nil
	case StatusOverdue:
		return 3, nil
	case StatusCancelled:
		return 4, nil
	default:
		return 5, fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
	}
}

// IsValid returns true if the status is recognised.
func (s SubscriptionStatus) IsValid() bool {
	_, err := StatusRank(s)
	return err == nil
}

// String returns the string representation.
func (s SubscriptionStatus) String() string {
	return string(s)
}

// ParseStatus converts a string into a known status.
func ParseStatus(raw string) (SubscriptionStatus, error) {
	s := SubscriptionStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// PlanType is the subscription tier.
type PlanType string

// Available plan types.
const (
	PlanBasic   PlanType = "basic"
	PlanPremium PlanType = "premium"
)

// PlanTypes lists the plan types offered in the form.
func PlanTypes() []PlanType {
	return []PlanType{PlanBasic, PlanPremium}
}

// BillingInterval is how often a subscription is charged.
type BillingInterval string

// Available billing intervals.
const (
	IntervalMonthly BillingInterval = "monthly"
	IntervalYearly  BillingInterval = "yearly"
)

// BillingIntervals lists the intervals offered in the form.
func BillingIntervals() []BillingInterval {
	return []BillingInterval{IntervalMonthly, IntervalYearly}
}

// Subscription attaches a plan to a vehicle.
type Subscription struct {
	ID        string             `json:"id" yaml:"id"`
	VehicleID string             `json:"vehicleId" yaml:"vehicleId"`
	Type      PlanType           `json:"type" yaml:"type"`
	Status    SubscriptionStatus `json:"status" yaml:"status"`
	Interval  BillingInterval    `json:"interval" yaml:"interval"`
	StartDate time.Time          `json:"startDate" yaml:"startDate"`
	EndDate   time.Time          `json:"endDate" yaml:"endDate"`
}

// Cancel moves the subscription to cancelled.
func (s *Subscription) Cancel() error {
	if !s.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(s.Status))
	}
	if s.Status == StatusCancelled {
		return ErrInvalidTransition
	}
	s.Status = StatusCancelled
	return nil
}

// DetailedSubscription is the row shown in the subscriptions table.
type DetailedSubscription struct {
	Subscription `json:",inline" yaml:",inline"`
	Vehicle      Vehicle `json:"vehicle" yaml:"vehicle"`
	User         User    `json:"user" yaml:"user"`
}
