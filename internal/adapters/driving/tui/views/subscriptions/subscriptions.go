// Package subscriptions provides the subscriptions table view.
package subscriptions

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/columns"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/tableview"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
)

var errNoService = errors.New("subscription service not available")

// View is the subscriptions table.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.SubscriptionService
	table   *tableview.Model[domain.DetailedSubscription]
}

// NewView creates a new subscriptions view.
func NewView(s *styles.Styles, service driving.SubscriptionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		service: service,
	}
	v.table = tableview.New(s, "Subscriptions", columns.Subscriptions(columns.SubscriptionActions{
		Cancel: v.cancel,
		Edit:   v.edit,
		Delete: v.delete,
	}))
	v.table.SetDetail(func(d domain.DetailedSubscription) string {
		return columns.SubscriptionDetail(s, d)
	})
	v.table.Reload = v.load
	return v
}

// Init loads the subscriptions.
func (v *View) Init() tea.Cmd {
	v.table.SetLoading()
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.SubscriptionsLoaded{Err: errNoService}
		}
		subs, err := v.service.ListDetailed(context.Background())
		return messages.SubscriptionsLoaded{Subscriptions: subs, Err: err}
	}
}

func (v *View) cancel(d domain.DetailedSubscription) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.SubscriptionCancelled{ID: d.ID, Err: errNoService}
		}
		err := v.service.Cancel(context.Background(), d.ID)
		return messages.SubscriptionCancelled{ID: d.ID, Err: err}
	}
}

func (v *View) edit(d domain.DetailedSubscription) tea.Cmd {
	return func() tea.Msg {
		return messages.Navigate{Path: messages.EditSubscriptionPath(d.ID)}
	}
}

func (v *View) delete(d domain.DetailedSubscription) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.SubscriptionDeleted{ID: d.ID, Err: errNoService}
		}
		err := v.service.Delete(context.Background(), d.ID)
		return messages.SubscriptionDeleted{ID: d.ID, Err: err}
	}
}

// Update handles messages for the subscriptions view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !v.table.Filtering() && !v.table.MenuOpen() && keymap.Matches(msg.String(), v.keymap.New) {
			return v, func() tea.Msg { return messages.Navigate{Path: "/subscriptions/new"} }
		}
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd

	case messages.SubscriptionsLoaded:
		if msg.Err != nil {
			v.table.SetError(msg.Err)
			return v, nil
		}
		v.table.SetRows(msg.Subscriptions)
		return v, nil

	case messages.SubscriptionCancelled:
		return v, v.afterMutation(msg.Err, "Subscription cancelled")

	case messages.SubscriptionDeleted:
		return v, v.afterMutation(msg.Err, "Subscription deleted")

	case messages.DataChanged:
		return v, v.load()
	}
	return v, nil
}

func (v *View) afterMutation(err error, notice string) tea.Cmd {
	if err != nil {
		v.table.SetError(err)
		return nil
	}
	v.table.SetNotice(notice)
	return v.load()
}

// View renders the subscriptions view.
func (v *View) View() string {
	return v.table.View() + "\n" + v.styles.Help.Render("[n] new subscription  [a] row actions  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.table.SetDimensions(width, height-1)
}

// Rows returns the visible rows in display order.
func (v *View) Rows() []domain.DetailedSubscription {
	return v.table.Rows()
}

// Table returns the interactive table.
func (v *View) Table() *tableview.Model[domain.DetailedSubscription] {
	return v.table
}
