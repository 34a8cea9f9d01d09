// Package messages defines Bubble Tea message types for the console.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"strings"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSubscriptions is the subscriptions table.
	ViewSubscriptions
	// ViewUsers is the users table.
	ViewUsers
	// ViewVehicles is the vehicles table.
	ViewVehicles
	// ViewUserDetail shows one user and their subscriptions.
	ViewUserDetail
	// ViewSubscriptionForm creates or edits a subscription.
	ViewSubscriptionForm
	// ViewSettings edits the application settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSubscriptions:
		return "subscriptions"
	case ViewUsers:
		return "users"
	case ViewVehicles:
		return "vehicles"
	case ViewUserDetail:
		return "user_detail"
	case ViewSubscriptionForm:
		return "subscription_form"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// Navigate asks the app to open the view addressed by a link path such as
// "/users/{id}".
type Navigate struct {
	Path string
}

// Route is a parsed link path.
type Route struct {
	View ViewType
	// ID is the entity addressed by the path, if any.
	ID string
}

// ParseRoute resolves a link path. Recognised paths:
//
//	/                          menu
//	/subscriptions             subscriptions table
//	/subscriptions/new         empty subscription form
//	/subscriptions/{id}/edit   subscription form for {id}
//	/users                     users table
//	/users/{id}                user detail
//	/vehicles                  vehicles table
//	/settings                  settings
//	/help                      help
func ParseRoute(path string) (Route, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 1 && parts[0] == "" {
		return Route{View: ViewMenu}, true
	}
	switch parts[0] {
	case "subscriptions":
		switch {
		case len(parts) == 1:
			return Route{View: ViewSubscriptions}, true
		case len(parts) == 2 && parts[1] == "new":
			return Route{View: ViewSubscriptionForm}, true
		case len(parts) == 3 && parts[1] != "" && parts[2] == "edit":
			return Route{View: ViewSubscriptionForm, ID: parts[1]}, true
		}
	case "users":
		switch {
		case len(parts) == 1:
			return Route{View: ViewUsers}, true
		case len(parts) == 2 && parts[1] != "":
			return Route{View: ViewUserDetail, ID: parts[1]}, true
		}
	case "vehicles":
		if len(parts) == 1 {
			return Route{View: ViewVehicles}, true
		}
	case "settings":
		if len(parts) == 1 {
			return Route{View: ViewSettings}, true
		}
	case "help":
		if len(parts) == 1 {
			return Route{View: ViewHelp}, true
		}
	}
	return Route{}, false
}

// UserPath returns the link path of a user.
func UserPath(id string) string {
	return "/users/" + id
}

// EditSubscriptionPath returns the link path of the subscription form for id.
func EditSubscriptionPath(id string) string {
	return "/subscriptions/" + id + "/edit"
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// StatusNotice carries a transient status-bar message.
type StatusNotice struct {
	Text string
}

// Quit signals the application should exit.
type Quit struct{}

// DataChanged signals the backing store changed outside the console.
type DataChanged struct{}

// SubscriptionsLoaded carries the detailed subscription rows.
type SubscriptionsLoaded struct {
	Subscriptions []domain.DetailedSubscription
	Err           error
}

// UsersLoaded carries the detailed user rows.
type UsersLoaded struct {
	Users []domain.DetailedUser
	Err   error
}

// VehiclesLoaded carries the detailed vehicle rows.
type VehiclesLoaded struct {
	Vehicles []domain.DetailedVehicle
	Err      error
}

// UserLoaded carries one detailed user.
type UserLoaded struct {
	User *domain.DetailedUser
	Err  error
}

// SubscriptionLoaded carries one subscription for editing.
type SubscriptionLoaded struct {
	// ID is the subscription that was requested.
	ID           string
	Subscription *domain.DetailedSubscription
	Err          error
}

// UserOptionsLoaded carries users for the form's user typeahead.
type UserOptionsLoaded struct {
	// InputID is the typeahead the users were loaded for.
	InputID int
	Users   []domain.User
	Err     error
}

// VehicleOptionsLoaded carries one user's vehicles for the form's vehicle
// typeahead.
type VehicleOptionsLoaded struct {
	UserID   string
	Vehicles []domain.Vehicle
	Err      error
}

// SubscriptionSaved signals a subscription was created or updated.
type SubscriptionSaved struct {
	Subscription domain.Subscription
	Created      bool
	Err          error
}

// SubscriptionCancelled signals a subscription was cancelled.
type SubscriptionCancelled struct {
	ID  string
	Err error
}

// SubscriptionDeleted signals a subscription was deleted.
type SubscriptionDeleted struct {
	ID  string
	Err error
}

// SettingsLoaded carries the current application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were persisted.
type SettingsSaved struct {
	Err error
}
