package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := map[ViewType]string{
		ViewMenu:             "menu",
		ViewSubscriptions:    "subscriptions",
		ViewUsers:            "users",
		ViewVehicles:         "vehicles",
		ViewUserDetail:       "user_detail",
		ViewSubscriptionForm: "subscription_form",
		ViewSettings:         "settings",
		ViewHelp:             "help",
		ViewType(99):         "unknown",
	}
	for view, want := range tests {
		assert.Equal(t, want, view.String())
	}
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
		ok   bool
	}{
		{"/", Route{View: ViewMenu}, true},
		{"", Route{View: ViewMenu}, true},
		{"/subscriptions", Route{View: ViewSubscriptions}, true},
		{"/subscriptions/new", Route{View: ViewSubscriptionForm}, true},
		{"/subscriptions/s-1/edit", Route{View: ViewSubscriptionForm, ID: "s-1"}, true},
		{"/users", Route{View: ViewUsers}, true},
		{"/users/u-42", Route{View: ViewUserDetail, ID: "u-42"}, true},
		{"/users/u-42/", Route{View: ViewUserDetail, ID: "u-42"}, true},
		{"/vehicles", Route{View: ViewVehicles}, true},
		{"/settings", Route{View: ViewSettings}, true},
		{"/help", Route{View: ViewHelp}, true},
		{"/vehicles/v1", Route{}, false},
		{"/users/u1/extra", Route{}, false},
		{"/subscriptions/s1", Route{}, false},
		{"/billing", Route{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ParseRoute(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaths_RoundTripThroughParseRoute(t *testing.T) {
	route, ok := ParseRoute(UserPath("abc"))
	assert.True(t, ok)
	assert.Equal(t, Route{View: ViewUserDetail, ID: "abc"}, route)

	route, ok = ParseRoute(EditSubscriptionPath("s9"))
	assert.True(t, ok)
	assert.Equal(t, Route{View: ViewSubscriptionForm, ID: "s9"}, route)
}
