// Package userdetail provides the view of one user and their subscriptions.
package userdetail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/columns"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/tableview"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
)

var errNoService = errors.New("user service not available")

// View shows a user profile above a table of the user's subscriptions.
type View struct {
	styles  *styles.Styles
	service driving.UserService

	userID string
	user   *domain.DetailedUser
	err    error
	table  *tableview.Model[domain.DetailedSubscription]
}

// NewView creates a new user detail view.
func NewView(s *styles.Styles, service driving.UserService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:  s,
		service: service,
		table:   tableview.New(s, "Subscriptions", columns.Subscriptions(columns.SubscriptionActions{})),
	}
	v.table.Back = "/users"
	v.table.Reload = v.load
	v.table.SetDetail(func(d domain.DetailedSubscription) string {
		return columns.SubscriptionDetail(s, d)
	})
	return v
}

// SetUser selects the user to show. Init loads it.
func (v *View) SetUser(id string) {
	if id != v.userID {
		v.user = nil
		v.table.SetRows(nil)
	}
	v.userID = id
}

// Init loads the selected user.
func (v *View) Init() tea.Cmd {
	v.err = nil
	v.table.SetLoading()
	return v.load()
}

func (v *View) load() tea.Cmd {
	id := v.userID
	return func() tea.Msg {
		if v.service == nil {
			return messages.UserLoaded{Err: errNoService}
		}
		user, err := v.service.Detailed(context.Background(), id)
		return messages.UserLoaded{User: user, Err: err}
	}
}

// Rows joins the user's subscriptions with their vehicles.
func Rows(u domain.DetailedUser) []domain.DetailedSubscription {
	vehicles := make(map[string]domain.Vehicle, len(u.Vehicles))
	for _, veh := range u.Vehicles {
		vehicles[veh.ID] = veh
	}
	rows := make([]domain.DetailedSubscription, 0, len(u.Subscriptions))
	for _, s := range u.Subscriptions {
		rows = append(rows, domain.DetailedSubscription{
			Subscription: s,
			Vehicle:      vehicles[s.VehicleID],
			User:         u.User,
		})
	}
	return rows
}

// Update handles messages for the user detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd

	case messages.UserLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.table.SetError(msg.Err)
			return v, nil
		}
		if msg.User == nil || msg.User.ID != v.userID {
			return v, nil
		}
		v.user = msg.User
		v.err = nil
		v.table.SetRows(Rows(*msg.User))
		return v, nil

	case messages.DataChanged:
		if v.userID == "" {
			return v, nil
		}
		return v, v.load()
	}
	return v, nil
}

// View renders the profile and the subscriptions table.
func (v *View) View() string {
	var b strings.Builder

	switch {
	case v.err != nil && errors.Is(v.err, domain.ErrNotFound):
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("User %s not found", v.userID)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	case v.user == nil:
		b.WriteString(v.styles.Muted.Render("Loading user..."))
		b.WriteString("\n\n")
	default:
		b.WriteString(v.renderProfile())
		b.WriteString("\n\n")
	}

	b.WriteString(v.table.View())
	return b.String()
}

func (v *View) renderProfile() string {
	u := v.user
	lines := []string{
		v.styles.Title.Render(u.FullName),
		v.styles.Muted.Render("Email   ") + u.Email,
		v.styles.Muted.Render("Phone   ") + u.Phone,
		v.styles.Muted.Render("Role    ") + string(u.Role),
	}
	if !u.CreatedAt.IsZero() {
		lines = append(lines, v.styles.Muted.Render("Joined  ")+u.CreatedAt.Format("2006-01-02"))
	}
	lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("%d vehicles", len(u.Vehicles))))
	return v.styles.Card.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	// profile card
	v.table.SetDimensions(width, height-9)
}

// User returns the loaded user.
func (v *View) User() *domain.DetailedUser {
	return v.user
}
