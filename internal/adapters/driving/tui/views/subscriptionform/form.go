// Package subscriptionform provides the create and edit form for a
// subscription. The user and vehicle are picked with typeaheads; the
// vehicle options follow the chosen user.
package subscriptionform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/typeahead"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
	"github.com/custodia-labs/fleetdesk/internal/logger"
)

// Field identifies a form field.
type Field int

const (
	FieldUser Field = iota
	FieldVehicle
	FieldPlan
	FieldInterval
	fieldCount
)

const (
	backPath   = "/subscriptions"
	fieldWidth = 48

	// titleLines is the title and the blank line under it.
	titleLines = 2
)

var (
	errNoService       = errors.New("form services not available")
	errMissingUser     = errors.New("choose a user")
	errMissingVehicle  = errors.New("choose a vehicle")
	errVehicleNotOwned = errors.New("vehicle does not belong to the chosen user")
)

// View is the subscription form.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	users         driving.UserService
	vehicles      driving.VehicleService
	subscriptions driving.SubscriptionService

	userInput    *typeahead.Model
	vehicleInput *typeahead.Model

	// editID is the subscription being edited; empty creates a new one.
	editID   string
	original *domain.Subscription
	userID   string

	plan     int
	interval int
	focus    Field
	saving   bool
	err      error

	width  int
	height int
}

// NewView creates a new subscription form.
func NewView(
	s *styles.Styles,
	users driving.UserService,
	vehicles driving.VehicleService,
	subscriptions driving.SubscriptionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:        s,
		keymap:        keymap.DefaultKeyMap(),
		users:         users,
		vehicles:      vehicles,
		subscriptions: subscriptions,
		width:         80,
		height:        24,
	}
	v.Reset("")
	return v
}

// Reset prepares the form for a new subscription, or for editing the
// subscription id when it is not empty.
func (v *View) Reset(id string) {
	v.editID = id
	v.original = nil
	v.userID = ""
	v.plan = 0
	v.interval = 0
	v.focus = FieldUser
	v.saving = false
	v.err = nil
	v.mount(nil, nil)
}

// mount creates both typeaheads, optionally with a value.
func (v *View) mount(user, vehicle *typeahead.Option) {
	v.userInput = typeahead.New(v.styles, typeahead.Config{
		EmptyMessage: "No users found",
		Placeholder:  "Search users...",
		Value:        user,
		IsLoading:    true,
		OnValueChange: func(o typeahead.Option) {
			logger.Debug("form: user selected %s", o.Value)
		},
	})
	v.vehicleInput = typeahead.New(v.styles, typeahead.Config{
		EmptyMessage: "This user has no vehicles",
		Placeholder:  "Search vehicles...",
		Value:        vehicle,
		Disabled:     user == nil,
		IsLoading:    user != nil,
	})
	v.userInput.SetWidth(v.inputWidth())
	v.vehicleInput.SetWidth(v.inputWidth())
	if user != nil {
		v.userID = user.Value
	}
	v.layout()
}

// Init starts loading the form data.
func (v *View) Init() tea.Cmd {
	if v.editID != "" {
		return tea.Batch(v.userInput.Init(), v.loadSubscription(v.editID))
	}
	return tea.Batch(v.userInput.Init(), v.loadUsers(), v.userInput.Focus())
}

func (v *View) loadSubscription(id string) tea.Cmd {
	return func() tea.Msg {
		if v.subscriptions == nil {
			return messages.SubscriptionLoaded{ID: id, Err: errNoService}
		}
		sub, err := v.subscriptions.Get(context.Background(), id)
		return messages.SubscriptionLoaded{ID: id, Subscription: sub, Err: err}
	}
}

func (v *View) loadUsers() tea.Cmd {
	inputID := v.userInput.ID()
	return func() tea.Msg {
		if v.users == nil {
			return messages.UserOptionsLoaded{InputID: inputID, Err: errNoService}
		}
		users, err := v.users.List(context.Background())
		return messages.UserOptionsLoaded{InputID: inputID, Users: users, Err: err}
	}
}

func (v *View) loadVehicles(userID string) tea.Cmd {
	return func() tea.Msg {
		if v.vehicles == nil {
			return messages.VehicleOptionsLoaded{UserID: userID, Err: errNoService}
		}
		vehicles, err := v.vehicles.ListByUser(context.Background(), userID)
		return messages.VehicleOptionsLoaded{UserID: userID, Vehicles: vehicles, Err: err}
	}
}

// UserOption converts a user into a typeahead option.
func UserOption(u domain.User) typeahead.Option {
	return typeahead.Option{Value: u.ID, Label: u.FullName, ID: u.ID}
}

// VehicleOption converts a vehicle into a typeahead option.
func VehicleOption(veh domain.Vehicle) typeahead.Option {
	return typeahead.Option{
		Value: veh.ID,
		Label: domain.VehicleTitle(veh),
		ID:    veh.ID,
		Extra: map[string]string{"userId": veh.UserID},
	}
}

// Update handles messages for the form.
//
//nolint:gocyclo // central message handler
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	defer v.layout()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case tea.MouseMsg:
		var userCmd, vehicleCmd tea.Cmd
		v.userInput, userCmd = v.userInput.Update(msg)
		v.vehicleInput, vehicleCmd = v.vehicleInput.Update(msg)
		switch {
		case v.userInput.Focused():
			v.focus = FieldUser
		case v.vehicleInput.Focused():
			v.focus = FieldVehicle
		}
		return v, tea.Batch(userCmd, vehicleCmd)

	case typeahead.ChangedMsg:
		if msg.ID == v.userInput.ID() {
			return v, v.userChanged(msg.Option)
		}
		return v, nil

	case messages.SubscriptionLoaded:
		if v.editID == "" || msg.ID != v.editID {
			// the form was reset meanwhile
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.edit(msg.Subscription)

	case messages.UserOptionsLoaded:
		if msg.InputID != v.userInput.ID() {
			return v, nil
		}
		v.userInput.SetLoading(false)
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		options := make([]typeahead.Option, len(msg.Users))
		for i, u := range msg.Users {
			options[i] = UserOption(u)
		}
		v.userInput.SetOptions(options)
		return v, nil

	case messages.VehicleOptionsLoaded:
		if msg.UserID != v.userID {
			// a newer user was picked meanwhile
			return v, nil
		}
		v.vehicleInput.SetLoading(false)
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		options := make([]typeahead.Option, len(msg.Vehicles))
		for i, veh := range msg.Vehicles {
			options[i] = VehicleOption(veh)
		}
		v.vehicleInput.SetOptions(options)
		return v, nil

	case messages.SubscriptionSaved:
		v.saving = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		notice := "Subscription updated"
		if msg.Created {
			notice = "Subscription created"
		}
		return v, tea.Batch(
			func() tea.Msg { return messages.StatusNotice{Text: notice} },
			func() tea.Msg { return messages.Navigate{Path: backPath} },
		)
	}

	// deferred blurs and spinner ticks
	var userCmd, vehicleCmd tea.Cmd
	v.userInput, userCmd = v.userInput.Update(msg)
	v.vehicleInput, vehicleCmd = v.vehicleInput.Update(msg)
	return v, tea.Batch(userCmd, vehicleCmd)
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Save):
		return v, v.save()
	case keymap.Matches(k, v.keymap.NextField):
		return v, v.setFocus((v.focus + 1) % fieldCount)
	case keymap.Matches(k, v.keymap.PrevField):
		return v, v.setFocus((v.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	switch v.focus {
	case FieldUser:
		if k == "esc" && v.userInput.State() == typeahead.Closed {
			return v, v.back()
		}
		v.userInput, cmd = v.userInput.Update(msg)
	case FieldVehicle:
		if k == "esc" && v.vehicleInput.State() == typeahead.Closed {
			return v, v.back()
		}
		v.vehicleInput, cmd = v.vehicleInput.Update(msg)
	case FieldPlan:
		v.plan = cycle(k, v.plan, len(domain.PlanTypes()))
	case FieldInterval:
		v.interval = cycle(k, v.interval, len(domain.BillingIntervals()))
	}
	if (v.focus == FieldPlan || v.focus == FieldInterval) && k == "esc" {
		return v, v.back()
	}
	return v, cmd
}

func cycle(k string, current, n int) int {
	switch k {
	case "left", "h":
		return (current + n - 1) % n
	case "right", "l", " ", "enter":
		return (current + 1) % n
	}
	return current
}

func (v *View) back() tea.Cmd {
	return func() tea.Msg { return messages.Navigate{Path: backPath} }
}

func (v *View) setFocus(f Field) tea.Cmd {
	v.userInput.Blur()
	v.vehicleInput.Blur()
	v.focus = f
	switch f {
	case FieldUser:
		return v.userInput.Focus()
	case FieldVehicle:
		return v.vehicleInput.Focus()
	}
	return nil
}

// userChanged resets the vehicle typeahead and loads the new user's vehicles.
func (v *View) userChanged(o typeahead.Option) tea.Cmd {
	if o.Value == v.userID {
		return nil
	}
	v.userID = o.Value
	v.vehicleInput.SetValue(nil)
	v.vehicleInput.SetOptions(nil)
	v.vehicleInput.SetDisabled(false)
	return tea.Batch(v.vehicleInput.SetLoading(true), v.loadVehicles(o.Value))
}

// edit mounts both typeaheads with the loaded subscription's values.
func (v *View) edit(d *domain.DetailedSubscription) tea.Cmd {
	if d == nil {
		v.err = domain.ErrNotFound
		return nil
	}
	sub := d.Subscription
	v.original = &sub
	user := UserOption(d.User)
	vehicle := VehicleOption(d.Vehicle)
	v.mount(&user, &vehicle)
	v.plan = indexOf(domain.PlanTypes(), sub.Type)
	v.interval = indexOf(domain.BillingIntervals(), sub.Interval)
	return tea.Batch(
		v.userInput.Init(),
		v.vehicleInput.Init(),
		v.loadUsers(),
		v.loadVehicles(user.Value),
	)
}

func indexOf[T comparable](values []T, v T) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return 0
}

// Draft returns the subscription the form would save.
func (v *View) Draft() (domain.Subscription, error) {
	user, ok := v.userInput.Selected()
	if !ok {
		return domain.Subscription{}, errMissingUser
	}
	vehicle, ok := v.vehicleInput.Selected()
	if !ok {
		return domain.Subscription{}, errMissingVehicle
	}
	if owner := vehicle.Extra["userId"]; owner != "" && owner != user.Value {
		return domain.Subscription{}, errVehicleNotOwned
	}

	var sub domain.Subscription
	if v.original != nil {
		sub = *v.original
	} else {
		sub.Status = domain.StatusActive
	}
	sub.VehicleID = vehicle.Value
	sub.Type = domain.PlanTypes()[v.plan]
	sub.Interval = domain.BillingIntervals()[v.interval]
	return sub, nil
}

func (v *View) save() tea.Cmd {
	if v.saving {
		return nil
	}
	sub, err := v.Draft()
	if err != nil {
		v.err = err
		return nil
	}
	v.err = nil
	v.saving = true
	create := v.original == nil

	return func() tea.Msg {
		if v.subscriptions == nil {
			return messages.SubscriptionSaved{Err: errNoService}
		}
		ctx := context.Background()
		if create {
			created, err := v.subscriptions.Create(ctx, sub)
			if err != nil {
				return messages.SubscriptionSaved{Err: err}
			}
			return messages.SubscriptionSaved{Subscription: *created, Created: true}
		}
		err := v.subscriptions.Update(ctx, sub)
		return messages.SubscriptionSaved{Subscription: sub, Err: err}
	}
}

// layout records where each typeahead is drawn so mouse presses land on
// the right option rows.
func (v *View) layout() {
	y := titleLines + 1 // "User" label
	v.userInput.SetOrigin(0, y)
	y += v.userInput.Height() + 1 // "Vehicle" label
	v.vehicleInput.SetOrigin(0, y)
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	title := "New subscription"
	if v.editID != "" {
		title = "Edit subscription"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(v.label(FieldUser, "User"))
	b.WriteString("\n")
	b.WriteString(v.userInput.View())
	b.WriteString("\n")
	b.WriteString(v.label(FieldVehicle, "Vehicle"))
	b.WriteString("\n")
	b.WriteString(v.vehicleInput.View())
	b.WriteString("\n\n")

	b.WriteString(v.choice(FieldPlan, "Plan", planLabels(), v.plan))
	b.WriteString("\n")
	b.WriteString(v.choice(FieldInterval, "Billing", intervalLabels(), v.interval))
	b.WriteString("\n\n")

	switch {
	case v.saving:
		b.WriteString(v.styles.Muted.Render("Saving..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] next field  [←/→] change  [ctrl+s] save  [esc] back"))
	return b.String()
}

func (v *View) label(f Field, text string) string {
	if v.focus == f {
		return v.styles.Subtitle.Render(text)
	}
	return v.styles.Muted.Render(text)
}

func (v *View) choice(f Field, label string, values []string, selected int) string {
	parts := make([]string, len(values))
	for i, val := range values {
		if i == selected {
			parts[i] = v.styles.Selected.Render(" " + val + " ")
		} else {
			parts[i] = v.styles.Normal.Render(" " + val + " ")
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, v.label(f, fmt.Sprintf("%-9s", label)), strings.Join(parts, " "))
}

func planLabels() []string {
	out := make([]string, 0, len(domain.PlanTypes()))
	for _, p := range domain.PlanTypes() {
		out = append(out, string(p))
	}
	return out
}

func intervalLabels() []string {
	out := make([]string, 0, len(domain.BillingIntervals()))
	for _, i := range domain.BillingIntervals() {
		out = append(out, string(i))
	}
	return out
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.userInput.SetWidth(v.inputWidth())
	v.vehicleInput.SetWidth(v.inputWidth())
	v.layout()
}

func (v *View) inputWidth() int {
	if w := v.width - 4; w < fieldWidth {
		return w
	}
	return fieldWidth
}

// Focus returns the focused field.
func (v *View) Focus() Field {
	return v.focus
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// UserInput returns the user typeahead.
func (v *View) UserInput() *typeahead.Model {
	return v.userInput
}

// VehicleInput returns the vehicle typeahead.
func (v *View) VehicleInput() *typeahead.Model {
	return v.vehicleInput
}
