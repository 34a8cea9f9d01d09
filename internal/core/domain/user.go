package domain

import "time"

// Role distinguishes operators from customers.
type Role string

// Known roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a customer account.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	FullName  string    `json:"fullName" yaml:"fullName"`
	Email     string    `json:"email" yaml:"email"`
	Phone     string    `json:"phone" yaml:"phone"`
	Role      Role      `json:"role" yaml:"role"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// DetailedUser is a user together with everything they own.
type DetailedUser struct {
	User          `json:",inline" yaml:",inline"`
	Vehicles      []Vehicle      `json:"vehicles" yaml:"vehicles"`
	Subscriptions []Subscription `json:"subscriptions" yaml:"subscriptions"`
}
