package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersList_Text(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "users", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "user: Ada Lovelace")
	assert.Contains(t, out, "email: grace@example.com")
	assert.Contains(t, out, "vehicles: 2019 Toyota Corolla (ABC-1234)")
}

func TestUsersList_FilterByVehicle(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "users", "list", "--filter", "vehicles=COROLLA")

	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.NotContains(t, out, "Grace Hopper")
	assert.NotContains(t, out, "Alan Turing")
}

func TestUsersList_UserFilterMatchesNameOnly(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "users", "list", "--filter", "user=grace@")

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUsersList_Search(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "users", "list", "--search", "turing")

	require.NoError(t, err)
	assert.Contains(t, out, "Alan Turing")
	assert.NotContains(t, out, "Ada Lovelace")
}

func TestUsersList_Table(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "users", "list", "-o", "table", "--sort", "email")

	require.NoError(t, err)
	assert.Contains(t, out, "USER")
	assert.Contains(t, out, "VEHICLES")
	assert.Less(t, strings.Index(out, "Ada Lovelace"), strings.Index(out, "Alan Turing"))
	assert.Less(t, strings.Index(out, "Alan Turing"), strings.Index(out, "Grace Hopper"))
}

func TestUsersList_TableEmpty(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "users", "list", "-o", "table", "-f", "user=nobody")

	require.NoError(t, err)
	assert.Equal(t, "No results.\n", out)
}

func TestVehiclesList_FilterByOwner(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "vehicles", "list", "-f", "user=hopper")

	require.NoError(t, err)
	assert.Contains(t, out, "vehicle: 2022 Volvo XC40 (XYZ-9876)")
	assert.Contains(t, out, "subscriptionstatus: overdue")
	assert.NotContains(t, out, "Corolla")
}

func TestSubscriptionsList_SortByStatusDescending(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "subscriptions", "list",
		"--sort", "subscriptionStatus", "--desc", "-o", "json", "-q", ".[].id")

	require.NoError(t, err)
	assert.Equal(t, "\"s3\"\n\"s2\"\n\"s1\"\n", out)
}

func TestSubscriptionsList_JSON(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "subs", "list", "-o", "json", "-f", "vehicle=civic")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "s3", rows[0]["id"])
	assert.Equal(t, "cancelled", rows[0]["status"])
	assert.Equal(t, "Alan Turing", rows[0]["user"].(map[string]any)["fullName"])
}

func TestSubscriptionsList_NDJSON(t *testing.T) {
	useServices(t, newTestServices(t))

	out, _, err := execute(t, "subscriptions", "list", "-o", "ndjson", "--sort", "subscriptionStatus")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"id":"s1"`)
	assert.Contains(t, lines[2], `"id":"s3"`)
}

func TestList_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"malformed filter", []string{"users", "list", "--filter", "corolla"}, "expected column=text"},
		{"unknown filter column", []string{"users", "list", "--filter", "plate=abc"}, "filterable:"},
		{"status has no text filter", []string{"subscriptions", "list", "--filter", "subscriptionStatus=active"}, "filterable:"},
		{"unknown sort column", []string{"subscriptions", "list", "--sort", "colour"}, "sortable:"},
		{"desc without sort", []string{"vehicles", "list", "--desc"}, "--desc requires --sort"},
		{"query on text output", []string{"users", "list", "-o", "text", "-q", "."}, "query"},
		{"unknown format", []string{"users", "list", "-o", "xml"}, "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useServices(t, newTestServices(t))

			_, _, err := execute(t, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestList_ServicesNotConfigured(t *testing.T) {
	t.Cleanup(resetCLI)

	for _, args := range [][]string{
		{"users", "list"},
		{"vehicles", "list"},
		{"subscriptions", "list"},
	} {
		_, _, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "not configured")
	}
}
