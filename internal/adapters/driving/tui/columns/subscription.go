package columns

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/datatable"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// Row action IDs of the subscriptions table.
const (
	ActionCancel = "cancel"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// SubscriptionActions are the callbacks behind the row action menu. A nil
// callback leaves its action out of the menu.
type SubscriptionActions struct {
	Cancel func(domain.DetailedSubscription) tea.Cmd
	Edit   func(domain.DetailedSubscription) tea.Cmd
	Delete func(domain.DetailedSubscription) tea.Cmd
}

func (a SubscriptionActions) list() []datatable.Action[domain.DetailedSubscription] {
	var out []datatable.Action[domain.DetailedSubscription]
	if a.Cancel != nil {
		out = append(out, datatable.Action[domain.DetailedSubscription]{ID: ActionCancel, Label: "Cancel subscription", Run: a.Cancel})
	}
	if a.Edit != nil {
		out = append(out, datatable.Action[domain.DetailedSubscription]{ID: ActionEdit, Label: "Edit subscription", Run: a.Edit})
	}
	if a.Delete != nil {
		out = append(out, datatable.Action[domain.DetailedSubscription]{ID: ActionDelete, Label: "Delete subscription", Run: a.Delete})
	}
	return out
}

// Subscriptions returns the subscriptions table columns.
func Subscriptions(actions SubscriptionActions) []datatable.Column[domain.DetailedSubscription] {
	cols := []datatable.Column[domain.DetailedSubscription]{
		Vehicle(IDVehicle, "Vehicle", func(d domain.DetailedSubscription) any { return d.Vehicle }),
		User("User", func(d domain.DetailedSubscription) domain.User { return d.User }),
		Status("Status", func(d domain.DetailedSubscription) domain.SubscriptionStatus { return d.Status }),
		Text("plan", "Plan", func(d domain.DetailedSubscription) string { return string(d.Type) }),
		Text("interval", "Billing", func(d domain.DetailedSubscription) string { return string(d.Interval) }),
		Text("start", "Start", func(d domain.DetailedSubscription) string { return formatDate(d.StartDate) }),
	}
	if list := actions.list(); len(list) > 0 {
		cols = append(cols, Actions(list...))
	}
	return cols
}

// SubscriptionDetail renders the detail card of a subscription.
func SubscriptionDetail(s *styles.Styles, d domain.DetailedSubscription) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	var b strings.Builder
	b.WriteString(s.Title.Render("Subscription"))
	b.WriteString("\n")
	field := func(label, value string) {
		b.WriteString(s.Muted.Render(fmt.Sprintf("%-9s", label)))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("ID", d.ID)
	field("Status", s.StatusIndicator(d.Status)+" "+string(d.Status))
	field("Plan", string(d.Type))
	field("Billing", string(d.Interval))
	field("Start", formatDate(d.StartDate))
	field("End", formatDate(d.EndDate))
	field("Vehicle", domain.VehicleTitle(d.Vehicle))
	field("User", d.User.FullName)
	field("Email", d.User.Email)
	return strings.TrimRight(b.String(), "\n")
}
