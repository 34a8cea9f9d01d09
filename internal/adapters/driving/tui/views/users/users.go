// Package users provides the users table view.
package users

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

// View is the users table.
type View struct {
	styles  *styles.Styles
	service driving.UserService
	table   *tableview.Model[domain.DetailedUser]
}

// NewView creates a new users view.
func NewView(s *styles.Styles, service driving.UserService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:  s,
		service: service,
		table:   tableview.New(s, "Users", columns.Users()),
	}
	v.table.SetDetail(v.detail)
	v.table.Reload = v.load
	return v
}

// Init loads the users.
func (v *View) Init() tea.Cmd {
	v.table.SetLoading()
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.UsersLoaded{Err: errNoService}
		}
		users, err := v.service.ListDetailed(context.Background())
		return messages.UsersLoaded{Users: users, Err: err}
	}
}

func (v *View) detail(u domain.DetailedUser) string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(u.FullName))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(u.Email))
	if u.Phone != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(u.Phone))
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d vehicles, %d subscriptions", len(u.Vehicles), len(u.Subscriptions)))
	for _, veh := range u.Vehicles {
		b.WriteString("\n  ")
		b.WriteString(domain.VehicleTitle(veh))
	}
	return b.String()
}

// Update handles messages for the users view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && !v.table.Filtering() {
			if u, ok := v.table.Current(); ok {
				path := messages.UserPath(u.ID)
				return v, func() tea.Msg { return messages.Navigate{Path: path} }
			}
		}
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd

	case messages.UsersLoaded:
		if msg.Err != nil {
			v.table.SetError(msg.Err)
			return v, nil
		}
		v.table.SetRows(msg.Users)
		return v, nil

	case messages.DataChanged:
		return v, v.load()
	}
	return v, nil
}

// View renders the users view.
func (v *View) View() string {
	return v.table.View() + "\n" + v.styles.Help.Render("[enter/u] open user  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.table.SetDimensions(width, height-1)
}

// Rows returns the visible rows in display order.
func (v *View) Rows() []domain.DetailedUser {
	return v.table.Rows()
}
