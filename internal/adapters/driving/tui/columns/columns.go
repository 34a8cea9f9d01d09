// Package columns declares the table columns for users, vehicles and
// subscriptions. The same definitions drive the console tables and the
// CLI list commands.
package columns

import (
	"strings"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/datatable"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// Column IDs shared across tables.
const (
	IDVehicle  = "vehicle"
	IDVehicles = "vehicles"
	IDUser     = "user"
	IDStatus   = "subscriptionStatus"
	IDActions  = "actions"

	// MetaStatus tags the status column.
	MetaStatus = "status"
)

const noValue = "—"

// Vehicle returns the vehicle column. get returns either one vehicle or a
// list of vehicles; the filter handles both.
func Vehicle[T any](id, header string, get func(T) any) datatable.Column[T] {
	return datatable.Column[T]{
		ID:       id,
		Header:   header,
		Accessor: get,
		Cell: func(row datatable.Row[T], _ *styles.Styles) string {
			return vehicleTitles(row.GetValue(id))
		},
		Filter:       VehicleFilter[T],
		GlobalFilter: true,
		Width:        40,
	}
}

func vehicleTitles(value any) string {
	vehicles, ok := asVehicles(value)
	if !ok || len(vehicles) == 0 {
		return noValue
	}
	titles := make([]string, len(vehicles))
	for i, v := range vehicles {
		titles[i] = domain.VehicleTitle(v)
	}
	return strings.Join(titles, ", ")
}

// VehicleFilter accepts the row when any of its vehicles has a title that
// contains value, ignoring case. A single vehicle is treated as a list of
// one.
func VehicleFilter[T any](row datatable.Row[T], columnID, value string) bool {
	vehicles, ok := asVehicles(row.GetValue(columnID))
	if !ok {
		return false
	}
	needle := strings.ToLower(value)
	for _, v := range vehicles {
		if strings.Contains(strings.ToLower(domain.VehicleTitle(v)), needle) {
			return true
		}
	}
	return false
}

func asVehicles(value any) ([]domain.Vehicle, bool) {
	switch v := value.(type) {
	case domain.Vehicle:
		return []domain.Vehicle{v}, true
	case *domain.Vehicle:
		if v == nil {
			return nil, false
		}
		return []domain.Vehicle{*v}, true
	case []domain.Vehicle:
		return v, true
	default:
		return nil, false
	}
}

// User returns a user column whose cell links to the user's page.
func User[T any](header string, get func(T) domain.User) datatable.Column[T] {
	return datatable.Column[T]{
		ID:       IDUser,
		Header:   header,
		Accessor: func(t T) any { return get(t) },
		Cell: func(row datatable.Row[T], s *styles.Styles) string {
			u, ok := asUser(row.GetValue(IDUser))
			if !ok || u.FullName == "" {
				return noValue
			}
			if s == nil {
				return u.FullName
			}
			return s.Link.Render(u.FullName)
		},
		Filter:       UserFilter[T],
		GlobalFilter: true,
		Width:        28,
		Link: func(t T) string {
			u := get(t)
			if u.ID == "" {
				return ""
			}
			return messages.UserPath(u.ID)
		},
	}
}

// UserFilter accepts the row when the user's full name contains value,
// ignoring case. Other user fields are not searched.
func UserFilter[T any](row datatable.Row[T], columnID, value string) bool {
	u, ok := asUser(row.GetValue(columnID))
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(u.FullName), strings.ToLower(value))
}

func asUser(value any) (domain.User, bool) {
	switch u := value.(type) {
	case domain.User:
		return u, true
	case *domain.User:
		if u == nil {
			return domain.User{}, false
		}
		return *u, true
	default:
		return domain.User{}, false
	}
}

// Status returns the subscription status column: a coloured dot, ordered by
// status rank, with no text filter.
func Status[T any](header string, get func(T) domain.SubscriptionStatus) datatable.Column[T] {
	return datatable.Column[T]{
		ID:       IDStatus,
		Header:   header,
		Accessor: func(t T) any { return get(t) },
		Cell: func(row datatable.Row[T], s *styles.Styles) string {
			status, _ := row.GetValue(IDStatus).(domain.SubscriptionStatus)
			if status == "" {
				return noValue
			}
			if s == nil {
				return string(status)
			}
			return s.StatusIndicator(status) + " " + string(status)
		},
		Sort: StatusSort[T],
		Meta: MetaStatus,
	}
}

// StatusSort orders rows by status rank, healthiest first. Unknown statuses
// sort last and tie with each other.
func StatusSort[T any](a, b datatable.Row[T], columnID string) int {
	return statusRank(a.GetValue(columnID)) - statusRank(b.GetValue(columnID))
}

func statusRank(value any) int {
	status, _ := value.(domain.SubscriptionStatus)
	rank, _ := domain.StatusRank(status)
	return rank
}

// Text returns a plain column over a string field, filtered by substring.
func Text[T any](id, header string, get func(T) string) datatable.Column[T] {
	return datatable.Column[T]{
		ID:       id,
		Header:   header,
		Accessor: func(t T) any { return get(t) },
		Filter: func(row datatable.Row[T], columnID, value string) bool {
			s, ok := row.GetValue(columnID).(string)
			return ok && strings.Contains(strings.ToLower(s), strings.ToLower(value))
		},
		Sort: func(a, b datatable.Row[T], columnID string) int {
			x, _ := a.GetValue(columnID).(string)
			y, _ := b.GetValue(columnID).(string)
			return strings.Compare(strings.ToLower(x), strings.ToLower(y))
		},
	}
}

// Actions returns the actions column. It has no value, filter or sort.
func Actions[T any](actions ...datatable.Action[T]) datatable.Column[T] {
	return datatable.Column[T]{
		ID:      IDActions,
		Header:  "",
		Actions: actions,
		Cell: func(_ datatable.Row[T], s *styles.Styles) string {
			if s == nil {
				return ""
			}
			return s.Muted.Render("⋯")
		},
	}
}
