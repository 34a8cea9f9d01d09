package datatable

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownColumn is returned for a column ID the table does not have.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNotFilterable is returned when filtering a column without a filter.
	ErrNotFilterable = errors.New("column is not filterable")

	// ErrNotSortable is returned when sorting by a column without a comparator.
	ErrNotSortable = errors.New("column is not sortable")
)

// Row is one data row as seen by filters, comparators and cells.
type Row[T any] struct {
	index    int
	original T
	columns  map[string]Column[T]
}

// Original returns the row data.
func (r Row[T]) Original() T {
	return r.original
}

// Index returns the position of the row in the unfiltered data.
func (r Row[T]) Index() int {
	return r.index
}

// GetValue returns the accessor value of the column columnID, or nil when
// the column is unknown or has no accessor.
func (r Row[T]) GetValue(columnID string) any {
	col, ok := r.columns[columnID]
	if !ok || col.Accessor == nil {
		return nil
	}
	return col.Accessor(r.original)
}

// NewRow wraps data as a row of the given columns. It is mostly useful for
// exercising filters and comparators directly.
func NewRow[T any](columns []Column[T], data T) Row[T] {
	return Row[T]{original: data, columns: indexColumns(columns)}
}

// Table holds data, column definitions and the current filter and sort
// state. It is not safe for concurrent use.
type Table[T any] struct {
	columns []Column[T]
	byID    map[string]Column[T]
	data    []T

	filters map[string]string
	global  string
	sortID  string
	desc    bool
}

// New creates a table over data.
func New[T any](columns []Column[T], data []T) *Table[T] {
	return &Table[T]{
		columns: columns,
		byID:    indexColumns(columns),
		data:    data,
		filters: make(map[string]string),
	}
}

func indexColumns[T any](columns []Column[T]) map[string]Column[T] {
	m := make(map[string]Column[T], len(columns))
	for _, c := range columns {
		m[c.ID] = c
	}
	return m
}

// SetData replaces the rows. Filters and sorting are kept.
func (t *Table[T]) SetData(data []T) {
	t.data = data
}

// Len returns the number of unfiltered rows.
func (t *Table[T]) Len() int {
	return len(t.data)
}

// Columns returns the column definitions.
func (t *Table[T]) Columns() []Column[T] {
	return t.columns
}

// Column returns the column with the given ID.
func (t *Table[T]) Column(id string) (Column[T], bool) {
	c, ok := t.byID[id]
	return c, ok
}

// FilterableColumns returns the IDs of columns with a filter, in order.
func (t *Table[T]) FilterableColumns() []string {
	var ids []string
	for _, c := range t.columns {
		if c.Filterable() {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// SortableColumns returns the IDs of columns with a comparator, in order.
func (t *Table[T]) SortableColumns() []string {
	var ids []string
	for _, c := range t.columns {
		if c.Sortable() {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// SetColumnFilter filters the column id by value. An empty value removes
// the filter.
func (t *Table[T]) SetColumnFilter(id, value string) error {
	c, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}
	if !c.Filterable() {
		return fmt.Errorf("%w: %q", ErrNotFilterable, id)
	}
	if value == "" {
		delete(t.filters, id)
		return nil
	}
	t.filters[id] = value
	return nil
}

// ColumnFilter returns the filter value of column id.
func (t *Table[T]) ColumnFilter(id string) string {
	return t.filters[id]
}

// SetGlobalFilter sets the value matched against every global column.
func (t *Table[T]) SetGlobalFilter(value string) {
	t.global = value
}

// GlobalFilter returns the global filter value.
func (t *Table[T]) GlobalFilter() string {
	return t.global
}

// ClearFilters removes the column filters and the global filter.
func (t *Table[T]) ClearFilters() {
	t.filters = make(map[string]string)
	t.global = ""
}

// SetSort orders rows by the column id.
func (t *Table[T]) SetSort(id string, desc bool) error {
	c, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}
	if !c.Sortable() {
		return fmt.Errorf("%w: %q", ErrNotSortable, id)
	}
	t.sortID = id
	t.desc = desc
	return nil
}

// ClearSort restores data order.
func (t *Table[T]) ClearSort() {
	t.sortID = ""
	t.desc = false
}

// Sorting returns the sort column and direction. The ID is empty when the
// table is unsorted.
func (t *Table[T]) Sorting() (id string, desc bool) {
	return t.sortID, t.desc
}

// Rows returns the rows that pass every column filter and the global
// filter, ordered by the sort column. Rows that compare equal keep their
// data order in both directions.
func (t *Table[T]) Rows() []Row[T] {
	rows := make([]Row[T], 0, len(t.data))
	for i, d := range t.data {
		row := Row[T]{index: i, original: d, columns: t.byID}
		if t.matches(row) {
			rows = append(rows, row)
		}
	}

	if c, ok := t.byID[t.sortID]; ok && c.Sort != nil {
		sort.SliceStable(rows, func(i, j int) bool {
			cmp := c.Sort(rows[i], rows[j], c.ID)
			if t.desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	return rows
}

func (t *Table[T]) matches(row Row[T]) bool {
	for id, value := range t.filters {
		c := t.byID[id]
		if !c.Filter(row, id, value) {
			return false
		}
	}

	global := strings.TrimSpace(t.global)
	if global == "" {
		return true
	}
	for _, c := range t.columns {
		if c.GlobalFilter && c.Filter != nil && c.Filter(row, c.ID, global) {
			return true
		}
	}
	return false
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
