// Package datatable provides a headless table engine with column filters,
// a global filter and stable sorting, plus a terminal renderer for it.
//
// Columns are declared once and shared by the console views and the CLI
// list commands. The engine never renders; View draws the filtered and
// sorted rows with lipgloss.
package datatable

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

// FilterFunc reports whether row matches value for the column columnID.
// Implementations must not panic; "no match" is false.
type FilterFunc[T any] func(row Row[T], columnID string, value string) bool

// SortFunc compares two rows for the column columnID: negative when a
// orders first, positive when b does and zero when they tie.
type SortFunc[T any] func(a, b Row[T], columnID string) int

// Action is a per-row operation offered by an actions column. Run is
// injected by the owner of the table.
type Action[T any] struct {
	ID    string
	Label string
	Run   func(T) tea.Cmd
}

// Column describes one table column.
type Column[T any] struct {
	// ID identifies the column in filters, sorting and row values.
	ID string

	// Header is the column title.
	Header string

	// Accessor extracts the column value from a row. Columns without an
	// accessor hold no value, such as the actions column.
	Accessor func(T) any

	// Cell renders the cell. A nil Styles asks for plain text.
	Cell func(row Row[T], s *styles.Styles) string

	// Filter and Sort are optional.
	Filter FilterFunc[T]
	Sort   SortFunc[T]

	// Meta tags the column for renderers, for example "status".
	Meta string

	// GlobalFilter includes the column in the global filter.
	GlobalFilter bool

	// Width caps the rendered cell width. Zero means unbounded.
	Width int

	// Link returns the navigation path of a cell, if it is a link.
	Link func(T) string

	// Actions lists the row actions of an actions column.
	Actions []Action[T]
}

// Filterable reports whether the column accepts a filter value.
func (c Column[T]) Filterable() bool {
	return c.Filter != nil
}

// Sortable reports whether the column can order rows.
func (c Column[T]) Sortable() bool {
	return c.Sort != nil
}

// Render returns the cell text for row, falling back to the accessor value.
func (c Column[T]) Render(row Row[T], s *styles.Styles) string {
	if c.Cell != nil {
		return c.Cell(row, s)
	}
	return stringify(row.GetValue(c.ID))
}
