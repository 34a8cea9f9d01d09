package memory

import (
	"testing"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/storagetest"
)

func TestContract_MemoryStores(t *testing.T) {
	storagetest.RunFleetStores(t, func(t *testing.T) (storagetest.Stores, func()) {
		return storagetest.Stores{
			Users:         NewUserStore(),
			Vehicles:      NewVehicleStore(),
			Subscriptions: NewSubscriptionStore(),
		}, nil
	})
}
