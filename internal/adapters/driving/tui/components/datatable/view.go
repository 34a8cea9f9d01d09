package datatable

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

const (
	sortAsc  = " ▲"
	sortDesc = " ▼"
	filtered = " *"

	// chromeLines is the header, its separator and the top and bottom
	// borders drawn around the rows.
	chromeLines = 4
)

// View draws a Table with a row cursor and an optional detail card for
// the row under the cursor.
type View[T any] struct {
	table  *Table[T]
	styles *styles.Styles

	// Detail renders the card shown beside the table. Nil disables it.
	Detail func(T) string

	cursor     int
	offset     int
	width      int
	height     int
	showDetail bool
}

// NewView creates a view of t.
func NewView[T any](t *Table[T], s *styles.Styles) *View[T] {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View[T]{
		table:  t,
		styles: s,
		width:  80,
		height: 20,
	}
}

// Table returns the underlying table.
func (v *View[T]) Table() *Table[T] {
	return v.table
}

// SetDimensions sets the area available to the view.
func (v *View[T]) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.clamp()
}

// MoveUp moves the cursor up one row.
func (v *View[T]) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
	v.clamp()
}

// MoveDown moves the cursor down one row.
func (v *View[T]) MoveDown() {
	v.cursor++
	v.clamp()
}

// Cursor returns the cursor position within the visible rows.
func (v *View[T]) Cursor() int {
	return v.cursor
}

// Current returns the row under the cursor.
func (v *View[T]) Current() (Row[T], bool) {
	rows := v.table.Rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return Row[T]{}, false
	}
	return rows[v.cursor], true
}

// ToggleDetail shows or hides the detail card.
func (v *View[T]) ToggleDetail() {
	v.showDetail = !v.showDetail
}

// DetailShown reports whether the detail card is shown.
func (v *View[T]) DetailShown() bool {
	return v.showDetail && v.Detail != nil
}

// Reset moves the cursor back to the first row.
func (v *View[T]) Reset() {
	v.cursor = 0
	v.offset = 0
}

func (v *View[T]) pageSize() int {
	n := v.height - chromeLines
	if n < 1 {
		n = 1
	}
	return n
}

func (v *View[T]) clamp() {
	n := len(v.table.Rows())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	page := v.pageSize()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+page {
		v.offset = v.cursor - page + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// View renders the table and, when enabled, the detail card.
func (v *View[T]) View() string {
	rows := v.table.Rows()
	if len(rows) == 0 {
		return v.styles.Muted.Render("No rows")
	}
	v.clamp()

	end := v.offset + v.pageSize()
	if end > len(rows) {
		end = len(rows)
	}
	visible := rows[v.offset:end]

	columns := v.table.Columns()
	sortID, desc := v.table.Sorting()
	headers := make([]string, len(columns))
	for i, c := range columns {
		h := c.Header
		if c.ID == sortID {
			if desc {
				h += sortDesc
			} else {
				h += sortAsc
			}
		}
		if v.table.ColumnFilter(c.ID) != "" {
			h += filtered
		}
		headers[i] = h
	}

	cursorRow := v.cursor - v.offset
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(v.styles.Theme().Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return v.styles.TableHeader
			case row == cursorRow:
				return v.styles.Selected.Padding(0, 1)
			default:
				return v.styles.TableCell
			}
		}).
		Headers(headers...)

	for _, row := range visible {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cell := c.Render(row, v.styles)
			if c.Width > 0 {
				cell = ansi.Truncate(cell, c.Width, "…")
			}
			cells[i] = cell
		}
		t.Row(cells...)
	}

	out := t.String()
	if len(rows) > len(visible) {
		out += "\n" + v.styles.Muted.Render(fmt.Sprintf("%d-%d of %d", v.offset+1, end, len(rows)))
	}

	if !v.DetailShown() {
		return out
	}
	current, ok := v.Current()
	if !ok {
		return out
	}
	card := v.styles.Card.Render(v.Detail(current.Original()))
	return lipgloss.JoinHorizontal(lipgloss.Top, out, "  ", card)
}

// PlainRows renders the filtered and sorted rows as plain text cells, for
// callers that print instead of draw.
func PlainRows[T any](t *Table[T]) (headers []string, rows [][]string) {
	columns := t.Columns()
	for _, c := range columns {
		if len(c.Actions) > 0 {
			continue
		}
		headers = append(headers, strings.ToUpper(c.ID))
	}
	for _, row := range t.Rows() {
		var cells []string
		for _, c := range columns {
			if len(c.Actions) > 0 {
				continue
			}
			cells = append(cells, c.Render(row, nil))
		}
		rows = append(rows, cells)
	}
	return headers, rows
}
