package driving

import "context"

// SeedResult summarises a seeding run.
type SeedResult struct {
	Users         int `json:"users" yaml:"users"`
	Vehicles      int `json:"vehicles" yaml:"vehicles"`
	Subscriptions int `json:"subscriptions" yaml:"subscriptions"`
}

// Seeder fills the stores with generated demo data.
type Seeder interface {
	// Seed generates count users, each with one vehicle and one active
	// subscription. The same seed yields the same data.
	Seed(ctx context.Context, count int, seed uint64) (*SeedResult, error)
}
