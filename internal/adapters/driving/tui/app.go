package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/typeahead"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/help"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/subscriptionform"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/subscriptions"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/userdetail"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/users"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/views/vehicles"
	"github.com/custodia-labs/fleetdesk/internal/logger"
)

// App is the main console application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the console styles.
	styles *styles.Styles

	menuView          *menu.View
	subscriptionsView *subscriptions.View
	usersView         *users.View
	vehiclesView      *vehicles.View
	userDetailView    *userdetail.View
	formView          *subscriptionform.View
	settingsView      *settings.View
	helpView          *help.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// path is the link path of the active view.
	path string

	// notice is a transient message shown under the active view until the
	// next key press.
	notice string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new console application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		menuView:          menu.NewView(s),
		subscriptionsView: subscriptions.NewView(s, ports.Subscriptions),
		usersView:         users.NewView(s, ports.Users),
		vehiclesView:      vehicles.NewView(s, ports.Vehicles),
		userDetailView:    userdetail.NewView(s, ports.Users),
		formView:          subscriptionform.NewView(s, ports.Users, ports.Vehicles, ports.Subscriptions),
		settingsView:      settings.NewView(s, ports.Settings),
		helpView:          help.NewView(s),
		currentView:       messages.ViewMenu,
		path:              "/",
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("fleetdesk"),
		a.waitForChange(),
	)
}

// waitForChange blocks on the live reload channel and reports one change.
// The app re-arms it after every DataChanged.
func (a *App) waitForChange() tea.Cmd {
	ch := a.ports.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.DataChanged{}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.notice = ""
		if a.currentView == messages.ViewMenu && msg.String() == "?" {
			return a, a.navigate("/help")
		}
		return a, a.updateActive(msg)

	case messages.Navigate:
		return a, a.navigate(msg.Path)

	case messages.ViewChanged:
		return a, a.open(messages.Route{View: msg.View})

	case messages.StatusNotice:
		a.notice = msg.Text
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		logger.Warn("tui: %v", msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case messages.DataChanged:
		logger.Debug("tui: store changed, reloading %s", a.currentView)
		return a, tea.Batch(a.updateActive(msg), a.waitForChange())

	// Results are routed to the view that requested them, which may no
	// longer be active.
	case messages.SubscriptionsLoaded, messages.SubscriptionCancelled, messages.SubscriptionDeleted:
		a.subscriptionsView, cmd = a.subscriptionsView.Update(msg)
		return a, cmd

	case messages.UsersLoaded:
		a.usersView, cmd = a.usersView.Update(msg)
		return a, cmd

	case messages.VehiclesLoaded:
		a.vehiclesView, cmd = a.vehiclesView.Update(msg)
		return a, cmd

	case messages.UserLoaded:
		a.userDetailView, cmd = a.userDetailView.Update(msg)
		return a, cmd

	case messages.SubscriptionLoaded, messages.UserOptionsLoaded, messages.VehicleOptionsLoaded,
		messages.SubscriptionSaved, typeahead.ChangedMsg:
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	// Forward other messages (mouse, spinner ticks, deferred blurs) to the
	// active view.
	return a, a.updateActive(msg)
}

// navigate opens the view addressed by path.
func (a *App) navigate(path string) tea.Cmd {
	route, ok := messages.ParseRoute(path)
	if !ok {
		a.err = fmt.Errorf("unknown route %q", path)
		return nil
	}
	a.path = path
	return a.open(route)
}

// open activates a view and starts its loading.
func (a *App) open(route messages.Route) tea.Cmd {
	a.currentView = route.View
	a.err = nil
	logger.Debug("tui: open %s %s", route.View, route.ID)

	switch route.View {
	case messages.ViewSubscriptions:
		return a.subscriptionsView.Init()
	case messages.ViewUsers:
		return a.usersView.Init()
	case messages.ViewVehicles:
		return a.vehiclesView.Init()
	case messages.ViewUserDetail:
		a.userDetailView.SetUser(route.ID)
		return a.userDetailView.Init()
	case messages.ViewSubscriptionForm:
		a.formView.Reset(route.ID)
		return a.formView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
		// nothing to load
	}
	return nil
}

// updateActive forwards msg to the active view.
func (a *App) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSubscriptions:
		a.subscriptionsView, cmd = a.subscriptionsView.Update(msg)
	case messages.ViewUsers:
		a.usersView, cmd = a.usersView.Update(msg)
	case messages.ViewVehicles:
		a.vehiclesView, cmd = a.vehiclesView.Update(msg)
	case messages.ViewUserDetail:
		a.userDetailView, cmd = a.userDetailView.Update(msg)
	case messages.ViewSubscriptionForm:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		a.helpView, cmd = a.helpView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewSubscriptions:
		body = a.subscriptionsView.View()
	case messages.ViewUsers:
		body = a.usersView.View()
	case messages.ViewVehicles:
		body = a.vehiclesView.View()
	case messages.ViewUserDetail:
		body = a.userDetailView.View()
	case messages.ViewSubscriptionForm:
		body = a.formView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.helpView.View()
	default:
		body = a.menuView.View()
	}

	switch {
	case a.err != nil:
		body += "\n" + a.styles.Error.Render(fmt.Sprintf("Error: %s", a.err))
	case a.notice != "":
		body += "\n" + a.styles.Success.Render(a.notice)
	}
	return body
}

// Run starts the console application.
func (a *App) Run() error {
	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(a.ctx),
	)
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Path returns the link path of the active view.
func (a *App) Path() string {
	return a.path
}

// Notice returns the transient status notice.
func (a *App) Notice() string {
	return a.notice
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// leave a line for the notice
	h := height - 1
	a.menuView.SetDimensions(width, h)
	a.subscriptionsView.SetDimensions(width, h)
	a.usersView.SetDimensions(width, h)
	a.vehiclesView.SetDimensions(width, h)
	a.userDetailView.SetDimensions(width, h)
	a.formView.SetDimensions(width, h)
	a.settingsView.SetDimensions(width, h)
	a.helpView.SetDimensions(width, h)
}
