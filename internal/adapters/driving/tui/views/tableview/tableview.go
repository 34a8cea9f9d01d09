// Package tableview provides the interactive table shared by the users,
// vehicles and subscriptions views: filtering, sorting, the detail card,
// the row action menu and link navigation.
package tableview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/datatable"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

// globalTarget is the filter target of "/".
const globalTarget = ""

// Model is an interactive table over rows of type T.
type Model[T any] struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	title  string
	table  *datatable.Table[T]
	view   *datatable.View[T]
	filter *input.FilterInput
	menu   *list.ActionMenu
	bar    *status.Bar

	// Reload is called on "r" and should return the load command.
	Reload func() tea.Cmd

	// Back is the path opened on esc.
	Back string

	filterTarget string
	filtering    bool
	menuOpen     bool
	loading      bool

	width  int
	height int
}

// New creates a table view with the given columns.
func New[T any](s *styles.Styles, title string, columns []datatable.Column[T]) *Model[T] {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	tbl := datatable.New(columns, nil)

	return &Model[T]{
		styles: s,
		keymap: km,
		title:  title,
		table:  tbl,
		view:   datatable.NewView(tbl, s),
		filter: input.NewFilterInput(s),
		menu:   list.NewActionMenu(s),
		bar:    status.NewBar(s, km),
		Back:   "/",
		width:  80,
		height: 24,
	}
}

// SetDetail sets the renderer of the detail card.
func (m *Model[T]) SetDetail(detail func(T) string) {
	m.view.Detail = detail
}

// Table returns the underlying table.
func (m *Model[T]) Table() *datatable.Table[T] {
	return m.table
}

// SetRows replaces the table data.
func (m *Model[T]) SetRows(rows []T) {
	m.loading = false
	m.table.SetData(rows)
	m.syncBar()
}

// SetLoading marks the table as loading.
func (m *Model[T]) SetLoading() {
	m.loading = true
	m.bar.SetState(status.StateLoading)
}

// SetError shows err in the status bar.
func (m *Model[T]) SetError(err error) {
	m.loading = false
	if err == nil {
		m.syncBar()
		return
	}
	m.bar.SetState(status.StateError)
	m.bar.SetMessage(err.Error())
}

// SetNotice shows a transient notice in the status bar.
func (m *Model[T]) SetNotice(text string) {
	m.bar.SetNotice(text)
}

// Loading reports whether a load is in flight.
func (m *Model[T]) Loading() bool {
	return m.loading
}

// Filtering reports whether the filter input has focus.
func (m *Model[T]) Filtering() bool {
	return m.filtering
}

// MenuOpen reports whether the row action menu is shown.
func (m *Model[T]) MenuOpen() bool {
	return m.menuOpen
}

// FilterTarget returns the column ID being filtered; empty means global.
func (m *Model[T]) FilterTarget() string {
	return m.filterTarget
}

// Current returns the row under the cursor.
func (m *Model[T]) Current() (T, bool) {
	row, ok := m.view.Current()
	if !ok {
		var zero T
		return zero, false
	}
	return row.Original(), true
}

// Rows returns the visible rows in display order.
func (m *Model[T]) Rows() []T {
	rows := m.table.Rows()
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.Original()
	}
	return out
}

func (m *Model[T]) syncBar() {
	m.bar.SetMessage("")
	m.bar.SetRows(len(m.table.Rows()), m.table.Len())
}

// Update handles a key press. Other messages are ignored.
func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case m.filtering:
		return m.updateFilter(keyMsg)
	case m.menuOpen:
		return m.updateMenu(keyMsg)
	default:
		return m.updateTable(keyMsg)
	}
}

func (m *Model[T]) updateFilter(msg tea.KeyMsg) (*Model[T], tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter(m.filter.Value())
	return m, cmd
}

func (m *Model[T]) applyFilter(value string) {
	if m.filterTarget == globalTarget {
		m.table.SetGlobalFilter(value)
	} else {
		// the target always comes from FilterableColumns
		_ = m.table.SetColumnFilter(m.filterTarget, value)
	}
	m.view.Reset()
	m.syncBar()
}

func (m *Model[T]) updateMenu(msg tea.KeyMsg) (*Model[T], tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.menuOpen = false
		return m, nil
	case "enter":
		m.menuOpen = false
		item, ok := m.menu.SelectedItem()
		if !ok {
			return m, nil
		}
		return m, m.runAction(item.ID)
	}
	m.menu, _ = m.menu.Update(msg)
	return m, nil
}

func (m *Model[T]) runAction(id string) tea.Cmd {
	row, ok := m.view.Current()
	if !ok {
		return nil
	}
	for _, action := range m.actions() {
		if action.ID == id && action.Run != nil {
			return action.Run(row.Original())
		}
	}
	return nil
}

func (m *Model[T]) actions() []datatable.Action[T] {
	for _, c := range m.table.Columns() {
		if len(c.Actions) > 0 {
			return c.Actions
		}
	}
	return nil
}

//nolint:gocyclo // one case per table keybinding
func (m *Model[T]) updateTable(msg tea.KeyMsg) (*Model[T], tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, m.keymap.Up):
		m.view.MoveUp()
	case keymap.Matches(k, m.keymap.Down):
		m.view.MoveDown()
	case keymap.Matches(k, m.keymap.Search):
		return m, m.startFilter(globalTarget)
	case keymap.Matches(k, m.keymap.Filter):
		return m, m.startFilter(m.nextFilterTarget())
	case keymap.Matches(k, m.keymap.Sort):
		m.cycleSort()
	case keymap.Matches(k, m.keymap.Reverse):
		if id, desc := m.table.Sorting(); id != "" {
			_ = m.table.SetSort(id, !desc)
		}
	case keymap.Matches(k, m.keymap.Detail):
		m.view.ToggleDetail()
	case keymap.Matches(k, m.keymap.Actions):
		m.openMenu()
	case keymap.Matches(k, m.keymap.Follow):
		return m, m.follow()
	case keymap.Matches(k, m.keymap.Reload):
		if m.Reload != nil {
			m.SetLoading()
			return m, m.Reload()
		}
	case keymap.Matches(k, m.keymap.Back):
		if m.table.GlobalFilter() != "" || m.hasColumnFilters() {
			m.table.ClearFilters()
			m.filter.Reset()
			m.view.Reset()
			m.syncBar()
			return m, nil
		}
		back := m.Back
		return m, func() tea.Msg { return messages.Navigate{Path: back} }
	}
	return m, nil
}

func (m *Model[T]) hasColumnFilters() bool {
	for _, id := range m.table.FilterableColumns() {
		if m.table.ColumnFilter(id) != "" {
			return true
		}
	}
	return false
}

func (m *Model[T]) startFilter(target string) tea.Cmd {
	m.filterTarget = target
	if target == globalTarget {
		m.filter.SetLabel("Search")
		m.filter.SetValue(m.table.GlobalFilter())
	} else {
		header := target
		if c, ok := m.table.Column(target); ok && c.Header != "" {
			header = c.Header
		}
		m.filter.SetLabel("Filter " + strings.ToLower(header))
		m.filter.SetValue(m.table.ColumnFilter(target))
	}
	m.filtering = true
	return m.filter.Focus()
}

// nextFilterTarget cycles through the filterable columns, starting after
// the current target.
func (m *Model[T]) nextFilterTarget() string {
	ids := m.table.FilterableColumns()
	if len(ids) == 0 {
		return globalTarget
	}
	for i, id := range ids {
		if id == m.filterTarget {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

// cycleSort moves to the next sortable column, then back to data order.
func (m *Model[T]) cycleSort() {
	ids := m.table.SortableColumns()
	if len(ids) == 0 {
		return
	}
	current, _ := m.table.Sorting()
	if current == "" {
		_ = m.table.SetSort(ids[0], false)
		return
	}
	for i, id := range ids {
		if id == current {
			if i+1 < len(ids) {
				_ = m.table.SetSort(ids[i+1], false)
			} else {
				m.table.ClearSort()
			}
			return
		}
	}
	m.table.ClearSort()
}

func (m *Model[T]) openMenu() {
	actions := m.actions()
	if len(actions) == 0 {
		return
	}
	if _, ok := m.view.Current(); !ok {
		return
	}
	items := make([]list.Item, len(actions))
	for i, a := range actions {
		items[i] = list.Item{ID: a.ID, Label: a.Label}
	}
	m.menu.SetItems("Actions", items)
	m.menuOpen = true
}

// follow opens the link of the first linked column of the current row.
func (m *Model[T]) follow() tea.Cmd {
	row, ok := m.view.Current()
	if !ok {
		return nil
	}
	for _, c := range m.table.Columns() {
		if c.Link == nil {
			continue
		}
		if path := c.Link(row.Original()); path != "" {
			return func() tea.Msg { return messages.Navigate{Path: path} }
		}
	}
	return nil
}

// SetDimensions sets the view dimensions.
func (m *Model[T]) SetDimensions(width, height int) {
	m.width = width
	m.height = height
	m.filter.SetWidth(width)
	m.bar.SetWidth(width)
	// title, filter line, status bar and spacing
	m.view.SetDimensions(width, height-8)
}

// View renders the title, filter, table, action menu and status bar.
func (m *Model[T]) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	if m.filtering || m.table.GlobalFilter() != "" || m.hasColumnFilters() {
		b.WriteString(m.filter.View())
	}
	b.WriteString("\n")

	body := m.view.View()
	if m.loading && m.table.Len() == 0 {
		body = m.styles.Muted.Render("Loading...")
	}
	if m.menuOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.menu.View())
	}
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.bar.View())

	return b.String()
}
