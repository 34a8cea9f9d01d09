// Package vehicles provides the vehicles table view.
package vehicles

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/columns"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/tableview"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
)

var errNoService = errors.New("vehicle service not available")

// View is the vehicles table.
type View struct {
	styles  *styles.Styles
	service driving.VehicleService
	table   *tableview.Model[domain.DetailedVehicle]
}

// NewView creates a new vehicles view.
func NewView(s *styles.Styles, service driving.VehicleService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:  s,
		service: service,
		table:   tableview.New(s, "Vehicles", columns.Vehicles()),
	}
	v.table.SetDetail(v.detail)
	v.table.Reload = v.load
	return v
}

// Init loads the vehicles.
func (v *View) Init() tea.Cmd {
	v.table.SetLoading()
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.VehiclesLoaded{Err: errNoService}
		}
		vehicles, err := v.service.ListDetailed(context.Background())
		return messages.VehiclesLoaded{Vehicles: vehicles, Err: err}
	}
}

func (v *View) detail(d domain.DetailedVehicle) string {
	lines := []string{
		v.styles.Title.Render(domain.VehicleTitle(d.Vehicle)),
		v.styles.Muted.Render("Colour ") + d.Color,
		v.styles.Muted.Render("Owner  ") + d.Owner.FullName,
	}
	if d.Subscription != nil {
		lines = append(lines,
			v.styles.Muted.Render("Plan   ")+string(d.Subscription.Type)+", "+string(d.Subscription.Interval),
			v.styles.Muted.Render("Status ")+v.styles.StatusIndicator(d.Subscription.Status)+" "+string(d.Subscription.Status),
		)
	} else {
		lines = append(lines, v.styles.Muted.Render("No subscription"))
	}
	return strings.Join(lines, "\n")
}

// Update handles messages for the vehicles view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd

	case messages.VehiclesLoaded:
		if msg.Err != nil {
			v.table.SetError(msg.Err)
			return v, nil
		}
		v.table.SetRows(msg.Vehicles)
		return v, nil

	case messages.DataChanged:
		return v, v.load()
	}
	return v, nil
}

// View renders the vehicles view.
func (v *View) View() string {
	return v.table.View() + "\n" + v.styles.Help.Render("[u] open owner  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.table.SetDimensions(width, height-1)
}

// Rows returns the visible rows in display order.
func (v *View) Rows() []domain.DetailedVehicle {
	return v.table.Rows()
}
