package columns

import (
	"time"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/datatable"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return noValue
	}
	return t.Format(dateLayout)
}

// Users returns the users table columns.
func Users() []datatable.Column[domain.DetailedUser] {
	return []datatable.Column[domain.DetailedUser]{
		User("Name", func(d domain.DetailedUser) domain.User { return d.User }),
		Text("email", "Email", func(d domain.DetailedUser) string { return d.Email }),
		Text("phone", "Phone", func(d domain.DetailedUser) string { return d.Phone }),
		Vehicle(IDVehicles, "Vehicles", func(d domain.DetailedUser) any { return d.Vehicles }),
	}
}

// Vehicles returns the vehicles table columns.
func Vehicles() []datatable.Column[domain.DetailedVehicle] {
	return []datatable.Column[domain.DetailedVehicle]{
		Vehicle(IDVehicle, "Vehicle", func(d domain.DetailedVehicle) any { return d.Vehicle }),
		Text("plate", "Plate", func(d domain.DetailedVehicle) string { return d.LicensePlate }),
		Text("color", "Colour", func(d domain.DetailedVehicle) string { return d.Color }),
		User("Owner", func(d domain.DetailedVehicle) domain.User { return d.Owner }),
		Status("Status", func(d domain.DetailedVehicle) domain.SubscriptionStatus {
			if d.Subscription == nil {
				return ""
			}
			return d.Subscription.Status
		}),
	}
}
